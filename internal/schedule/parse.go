package schedule

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stnakamura/gyocal-api/internal/models"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
)

// The backend is told not to fence its output, but it often does anyway.
var fenceRe = regexp.MustCompile("^```[a-zA-Z]*\\s*|\\s*```$")

// StripCodeFence removes surrounding markdown code-fence markers and
// whitespace from raw extraction output.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = fenceRe.ReplaceAllString(trimmed, "")
	return strings.TrimSpace(trimmed)
}

var validate = validator.New()

// ParseEvents normalizes raw extraction output into event records. The
// whole batch fails on the first malformed element; no semantic correction
// is attempted here.
func ParseEvents(raw string) ([]models.EventRecord, error) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return nil, appErrors.Clone(appErrors.ErrMalformedOutput, "extraction output is empty")
	}

	var records []models.EventRecord
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedOutput.Code, appErrors.ErrMalformedOutput.Status, "extraction output is not a JSON event list")
	}

	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrMalformedOutput.Code, appErrors.ErrMalformedOutput.Status,
				fmt.Sprintf("event %d is invalid", i))
		}
	}

	return records, nil
}
