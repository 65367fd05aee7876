// database/db.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/config"
)

// Connect открывает пул соединений с базой данных опроса и проверяет его
func Connect(cfg config.MySQLConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных опроса: %w", err)
	}

	// Загрузка выполняется один раз при старте, большой пул не нужен
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось установить соединение с базой данных опроса: %w", err)
	}

	log.Printf("✅ Подключение к базе данных %s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.DBName)
	return db, nil
}
