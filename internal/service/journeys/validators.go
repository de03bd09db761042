package journeys

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zvrva/journeys/internal/domain"
)

// DateLayout is the accepted departure date format.
const DateLayout = "2006-01-02"

var layoutDisplay = strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD")

// ValidateDateFormat checks that value parses as a date under the given
// layout. Pure, no side effects.
func ValidateDateFormat(value, layout string) error {
	if _, err := time.Parse(layout, value); err != nil {
		return &domain.FormatError{
			Message: fmt.Sprintf("Invalid date format. Should be %s.", layoutDisplay.Replace(layout)),
		}
	}
	return nil
}

// validateCity checks that a city with the uppercase-normalized code exists.
func (s *JourneyService) validateCity(ctx context.Context, code string) error {
	code = domain.NormalizeCode(code)
	exists, err := s.cities.ExistsByCode(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Message: fmt.Sprintf("City with code %q does not exist.", code)}
	}
	return nil
}
