package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// Source - источник сырых байтов (файл или URL)
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// DaySource - источник записей по дням
type DaySource interface {
	Name() string
	Days(ctx context.Context) ([]models.RawDay, error)
}

// FileSource читает данные из файла
type FileSource struct {
	Path string
}

func (s FileSource) Name() string {
	return s.Path
}

// Fetch читает файл целиком
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

// HTTPSource загружает данные одним GET-запросом, без повторов
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string {
	return s.URL
}

// Fetch выполняет запрос и возвращает тело ответа
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("неожиданный статус ответа: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// NewSource создает файловый или HTTP-источник в зависимости от kind
func NewSource(kind, location string, timeout time.Duration) Source {
	if kind == "http" {
		return HTTPSource{URL: location, Client: &http.Client{Timeout: timeout}}
	}
	return FileSource{Path: location}
}

// JSONDays разбирает записи по дням из JSON-источника
type JSONDays struct {
	Source Source
}

func (s JSONDays) Name() string {
	return s.Source.Name()
}

// Days загружает и разбирает записи
func (s JSONDays) Days(ctx context.Context) ([]models.RawDay, error) {
	raw, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseDays(raw)
}
