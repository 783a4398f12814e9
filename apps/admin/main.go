package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/attendance"
	logsvc "github.com/daeshin/schoolhub/services/logger"
	"github.com/daeshin/schoolhub/storage/database"
	gormrepos "github.com/daeshin/schoolhub/storage/database/gorm"
	sqlxrepos "github.com/daeshin/schoolhub/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger, err := logsvc.New("ADMIN", conf)
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	defer logger.Sync()

	// set up stores
	var primaryDB *sql.DB
	primary := sqlxrepos.NewStore(nil)
	if db, err := database.Open(conf); err == nil {
		primaryDB = db.DB
		primary = sqlxrepos.NewStore(db)
	} else {
		logger.Warn("primary store unavailable", err)
	}
	defer primary.Close()

	localDB, err := gormrepos.Open(conf.Local.Path, conf.Debug)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up local store: %v", err), err)
	}
	local := gormrepos.NewStore(localDB)
	defer local.Close()

	// start CLI
	cli := commandLine{
		primaryDB: primaryDB,
		stores:    map[string]attendance.Repository{primary.Name(): primary, local.Name(): local},
		usrRepo:   local,
		out:       os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		logger.Sync()
		os.Exit(1)
	}
}
