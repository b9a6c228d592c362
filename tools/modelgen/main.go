package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

func main() {
	var dsn, out, table string
	flag.StringVar(&dsn, "dsn", os.Getenv("TYCOON_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&table, "table", "save_records", "table to generate a model for")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or TYCOON_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext | gen.WithDefaultQuery,
	})
	g.UseDB(db)
	g.ApplyBasic(g.GenerateModel(table))
	g.Execute()

	fmt.Printf("generated gorm model for %s at %s\n", table, out)
}
