package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshkumar7463/army-chatbot/db"
	"github.com/adarshkumar7463/army-chatbot/internal/chatbot"
	"github.com/adarshkumar7463/army-chatbot/internal/config"
	"github.com/adarshkumar7463/army-chatbot/internal/export"
	"github.com/adarshkumar7463/army-chatbot/internal/log"
	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// application bundles the wired components shared by the serve and ask
// commands.
type application struct {
	cfg      *config.Config
	logger   log.Logger
	pool     *pgxpool.Pool // nil in dev mode
	store    records.Store
	exporter *export.Exporter
	engine   *chatbot.Engine
}

func (a *application) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// setup loads configuration and wires the record store, exporter and
// engine. With dev true the store is in-memory and no database is touched.
func setup(ctx context.Context, dev bool, metrics *chatbot.Metrics) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level, JSON: cfg.LogJSON})

	exporter, err := export.New(cfg.ExportDir, cfg.ExportBaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("creating exporter: %w", err)
	}

	a := &application{cfg: cfg, logger: logger, exporter: exporter}

	if dev {
		store := records.NewMemoryStore()
		if err := seedDev(ctx, store); err != nil {
			return nil, fmt.Errorf("seeding dev store: %w", err)
		}
		a.store = store
		logger.Warn("using in-memory record store, data will not persist")
	} else {
		if err := db.Migrate(cfg.PostgresURL()); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		pool, err := pgxpool.New(ctx, cfg.PostgresConnectionString())
		if err != nil {
			return nil, fmt.Errorf("creating connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.pool = pool
		a.store = records.NewPostgresStore(pool, logger)
	}

	a.engine = chatbot.New(a.store, exporter, logger, metrics)
	return a, nil
}

// seedDev loads a small sample roster into the dev store.
func seedDev(ctx context.Context, store records.Store) error {
	officers := []records.Officer{
		{
			ArmyNumber: "A1234B", FullName: "Arjun Singh", Rank: "Colonel",
			Position: "Commanding Officer", Unit: "5 Kashmir Rifles",
			BloodGroup:     "B+",
			DateOfBirth:    time.Date(1980, 4, 12, 0, 0, 0, 0, time.UTC),
			EnlistmentDate: time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC),
			Phone:          "9876543210", Email: "arjun.singh@army.example",
			Address: "Srinagar",
		},
		{
			ArmyNumber: "C5678D", FullName: "Vikram Rathore", Rank: "Major",
			Unit: "11 Ladakh Scouts", BloodGroup: "O+",
			EnlistmentDate: time.Date(2016, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, o := range officers {
		if err := store.PutOfficer(ctx, o); err != nil {
			return err
		}
	}
	if err := store.AddFamilyMember(ctx, records.FamilyMember{
		ArmyNumber: "A1234B", Name: "Devendra Singh", Relation: "Father",
		DateOfBirth: time.Date(1955, 1, 2, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		return err
	}
	if err := store.AddEducation(ctx, records.EducationRecord{
		ArmyNumber: "A1234B", Degree: "B.Tech", Institution: "NDA Pune",
		YearOfPassing: 2000, Grade: "A",
	}); err != nil {
		return err
	}
	return store.AddAward(ctx, records.AwardRecord{
		ArmyNumber: "A1234B", AwardName: "Vir Chakra", Reason: "Gallantry",
		DateAwarded: time.Date(2019, 8, 15, 0, 0, 0, 0, time.UTC), Location: "Delhi",
	})
}
