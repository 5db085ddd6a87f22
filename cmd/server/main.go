package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	inventory "github.com/goliatone/go-inventory"
	"github.com/goliatone/go-inventory/rest"
)

func main() {
	cfg := inventory.LoadConfig()

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	users := inventory.NewUsersRepository(db)
	items := inventory.NewItemsRepository(db)

	provider := inventory.NewUserProvider(users)
	auther := inventory.NewAuthenticator(provider, cfg)

	booking := inventory.NewItemStateMachine(items)

	srv := rest.NewServer(auther, users, items, booking)

	go func() {
		if err := srv.Listen(cfg.GetListenAddr()); err != nil {
			log.Fatal(err)
		}
	}()

	WaitExitSignal()

	if err := srv.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func openDatabase(ctx context.Context, cfg inventory.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := inventory.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
