package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadFailure - источник недоступен или вернул неразбираемые данные
	ErrLoadFailure = errors.New("ошибка загрузки данных")

	// ErrMalformedRecord - в записи нет ожидаемого поля или оно некорректно
	ErrMalformedRecord = errors.New("некорректная запись")
)

// RecordError описывает некорректную запись с указанием поля
type RecordError struct {
	Index int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("запись %d: поле %q отсутствует", e.Index, e.Field)
	}
	return fmt.Sprintf("запись %d: поле %q: %v", e.Index, e.Field, e.Err)
}

func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}

func fetchError(name string, err error) error {
	return fmt.Errorf("%w: источник %s: %v", ErrLoadFailure, name, err)
}

func alreadyClassified(err error) bool {
	return errors.Is(err, ErrMalformedRecord) || errors.Is(err, ErrLoadFailure)
}
