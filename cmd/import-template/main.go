package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"projectdeck/internal/ingest"
	"projectdeck/internal/project"
	"projectdeck/pkg/database"
)

func main() {
	var (
		in = flag.String("file", "", "input path, one AI-template document")
	)
	flag.Parse()

	if *in == "" {
		log.Fatal("usage: import-template -file <template.txt>")
	}

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

	p := ingest.ParseTemplate(string(raw))
	if p == nil {
		log.Fatalf("failed to parse template %s", *in)
	}
	if errs := ingest.Validate(p); len(errs) > 0 {
		log.Fatalf("template %s is invalid:\n  %s", *in, strings.Join(errs, "\n  "))
	}

	repo := project.NewRepo(db)
	names, err := repo.Names(ctx)
	if err != nil {
		log.Fatalf("load existing names failed: %v", err)
	}
	for _, n := range names {
		if strings.TrimSpace(n) == p.Name {
			log.Fatalf("project %q already exists", p.Name)
		}
	}

	p.ID = ingest.NewProjectID(p.Name, map[string]bool{})
	if err := repo.Create(ctx, p); err != nil {
		log.Fatalf("save %q failed: %v", p.Name, err)
	}

	log.Printf("✅ imported project %q (id %s) from %s", p.Name, p.ID, *in)
}
