package main

import (
	"fmt"
	"log"
	"os"

	"github.com/BruksfildServices01/naf-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/naf-scheduler/internal/db"
)

const usage = "uso: migrate up|down|version"

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg := config.Load()

	mg, err := dbpkg.NewMigrator(cfg.DBUrl)
	if err != nil {
		log.Fatalf("migrator: %v", err)
	}
	defer mg.Close()

	switch os.Args[1] {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = mg.Version()
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
	default:
		log.Fatal(usage)
	}

	if err != nil {
		log.Fatalf("migrate %s: %v", os.Args[1], err)
	}
}
