package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"time"

	"github.com/stemsi/absensi-backend/internal/config"
	"github.com/stemsi/absensi-backend/internal/database"
	"github.com/stemsi/absensi-backend/internal/logger"
	"github.com/stemsi/absensi-backend/internal/repository"
	"github.com/stemsi/absensi-backend/internal/service"
)

var names = []string{
	"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
	"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
	"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
	"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
	"Wahyu Hidayat", "Xena Maharani", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra",
}

func main() {
	count := flag.Int("n", len(names), "Number of students to register")
	prefix := flag.String("uid-prefix", "S", "Prefix of generated student uids")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentService := service.NewStudentService(repository.NewStudentRepository(pool))

	fmt.Printf("=== Seeding %d Students ===\n", *count)

	created, skipped := 0, 0
	for i := 0; i < *count; i++ {
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s %d", name, i/len(names)+1)
		}
		uid := fmt.Sprintf("%s-%04d", *prefix, i+1)

		student, err := studentService.Create(ctx, name, &uid)
		if errors.Is(err, service.ErrDuplicateUID) {
			skipped++
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("uid", uid).Msg("Failed to create student")
		}
		created++
		fmt.Printf("  #%d %s (%s)\n", student.ID, student.Name, uid)
	}

	fmt.Printf("Done: %d created, %d already registered\n", created, skipped)
}
