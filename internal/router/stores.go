package router

import (
	"database/sql"
	"fmt"

	"pet-marketplace/internal/adapters/storage/jsonfile"
	mem "pet-marketplace/internal/adapters/storage/memory"
	pg "pet-marketplace/internal/adapters/storage/postgres"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/config"
	"pet-marketplace/internal/platform/logger"
)

// Stores agrupa los repos de un mismo backend.
type Stores struct {
	Users users.Repository
	Pets  pets.Repository

	db *sql.DB
}

// Close libera la conexión de Postgres si la hay.
func (s Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func MemoryStores() Stores {
	return Stores{Users: mem.NewUserRepo(), Pets: mem.NewPetRepo()}
}

// OpenStores elige el backend según cfg.Store. Para postgres aplica las
// migraciones pendientes antes de devolver los repos.
func OpenStores(cfg config.Config, log logger.Logger) (Stores, error) {
	switch cfg.Store {
	case config.StoreJSON:
		s, err := jsonfile.Open(cfg.DataDir)
		if err != nil {
			return Stores{}, err
		}
		log.Info("using json file store", logger.Fields{"dir": s.Dir()})
		return Stores{Users: jsonfile.NewUsersRepo(s), Pets: jsonfile.NewPetsRepo(s)}, nil

	case config.StorePostgres:
		if err := pg.MigrateUp(cfg.DBDSN, log); err != nil {
			return Stores{}, err
		}
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return Stores{}, fmt.Errorf("open postgres: %w", err)
		}
		log.Info("using postgres store", nil)
		return Stores{Users: pg.NewUsersRepo(db), Pets: pg.NewPetsRepo(db), db: db}, nil

	default:
		log.Warn("using in-memory store; data is lost on restart", nil)
		return MemoryStores(), nil
	}
}
