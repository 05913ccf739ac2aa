package create_consultation

import (
	"fmt"
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Возвращает разобранное время начала
func validateRequest(req *Request) (time.Time, error) {
	if req.SpecialistID <= 0 {
		return time.Time{}, fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if !domain.TimeSelection(req.TimeSelection).IsValid() {
		return time.Time{}, fmt.Errorf("%w: timeSelection must be 1, 2 or 3", ErrInvalidInput)
	}

	if req.StartTime == "" {
		return time.Time{}, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	startTime, err := time.Parse(domain.DateTimeFormat, req.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Price < 0 {
		return time.Time{}, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	if len([]rune(req.Description)) > domain.MaxDescriptionLength {
		return time.Time{}, fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	return startTime, nil
}
