package create_booking

import (
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ConsultationID <= 0 {
		return fmt.Errorf("%w: consultationID must be positive", ErrInvalidInput)
	}

	if len([]rune(req.Description)) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	return nil
}
