package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger представляет уровневый логгер панели
type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
	file        *os.File
}

// NewLogger создает логгер, пишущий в out
func NewLogger(out io.Writer, verbose bool) *Logger {
	return &Logger{
		infoLogger:  log.New(out, "INFO: ", log.Ldate|log.Ltime),
		errorLogger: log.New(out, "ERROR: ", log.Ldate|log.Ltime),
		debugLogger: log.New(out, "DEBUG: ", log.Ldate|log.Ltime),
		isVerbose:   verbose,
	}
}

// NewFileLogger создает логгер, который пишет в стандартный вывод и
// дублирует записи в файл. Если path пустой, файл не используется.
func NewFileLogger(path string, verbose bool) (*Logger, error) {
	if path == "" {
		return NewLogger(os.Stdout, verbose), nil
	}

	// Создаем или открываем лог-файл для записи
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть или создать файл лога: %w", err)
	}

	logger := NewLogger(io.MultiWriter(os.Stdout, file), verbose)
	logger.file = file
	return logger, nil
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLogger.Println(fmt.Sprintf(format, v...))
}

// Error логирует сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLogger.Println(fmt.Sprintf(format, v...))
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *Logger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}
	l.debugLogger.Println(fmt.Sprintf(format, v...))
}

// LogLoadStart логирует начало загрузки данных
func (l *Logger) LogLoadStart(sources int) {
	l.Info("Начало загрузки данных из %d источников", sources)
}

// LogLoadComplete логирует завершение загрузки данных
func (l *Logger) LogLoadComplete(startTime time.Time, days int, families int) {
	l.Info("Загрузка данных завершена. Длительность: %v", time.Since(startTime))
	l.Info("Загружено: %d дней, %d семей", days, families)
}

// Close закрывает файл лога, если он был открыт
func (l *Logger) Close() {
	if l.file == nil {
		return
	}
	if err := l.file.Close(); err != nil {
		log.Printf("Ошибка при закрытии файла лога: %v", err)
	}
	l.file = nil
}
