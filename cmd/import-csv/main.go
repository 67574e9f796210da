package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"projectdeck/internal/ingest"
	"projectdeck/internal/project"
	"projectdeck/pkg/database"
)

func main() {
	var (
		in = flag.String("file", "data/projects.csv", "input path, pipe-delimited project table")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s failed: %v", *in, err)
	}

	repo := project.NewRepo(db)
	names, err := repo.Names(ctx)
	if err != nil {
		log.Fatalf("load existing names failed: %v", err)
	}

	res := ingest.ParseCSVBatch(string(raw), names)

	stored := 0
	for i := range res.Imported {
		p := &res.Imported[i]
		if err := repo.Create(ctx, p); err != nil {
			log.Printf("save %q failed: %v", p.Name, err)
			continue
		}
		stored++
	}

	for _, e := range res.Errors {
		log.Printf("[import] %s", e)
	}
	log.Printf("✅ imported %d projects from %s (%d rows failed)", stored, *in, res.FailedCount)
}
