package moderation

import (
	"fmt"
	"strings"

	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// Parse turns raw model output into a provisional result. It never fails
// open: empty, malformed or off-schema output yields the analysis error
// result. The returned result is always usable; a non-nil error only reports
// why the fallback was taken.
func Parse(raw string) (domain.Result, error) {
	result, err := decode(raw)
	if err != nil {
		return AnalysisErrorResult(), err
	}
	return result, nil
}

func decode(raw string) (domain.Result, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.Result{}, domain.ErrEmptyJudgment
	}

	p := parserPool.Get()
	defer parserPool.Put(p)

	root, err := p.Parse(raw)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%w: %v", domain.ErrSchemaViolation, err)
	}
	if root.Type() != fastjson.TypeObject {
		return domain.Result{}, schemaError("top level value must be an object, got %s", root.Type())
	}

	result := domain.Result{Status: domain.StatusFailed, Issues: []domain.Issue{}}

	if v := present(root, "status"); v != nil {
		status, err := stringValue(v, "status")
		if err != nil {
			return domain.Result{}, err
		}
		result.Status = domain.Status(status)
		if !result.Status.Valid() {
			return domain.Result{}, schemaError("unknown status %q", status)
		}
	}

	if v := present(root, "confidence"); v != nil {
		confidence, err := numberValue(v, "confidence")
		if err != nil {
			return domain.Result{}, err
		}
		result.Confidence = confidence
	}

	if v := present(root, "violation_category"); v != nil {
		category, err := stringValue(v, "violation_category")
		if err != nil {
			return domain.Result{}, err
		}
		if category != "" {
			result.ViolationCategory = domain.StringPtr(category)
		}
	}

	if v := present(root, "issues"); v != nil && v.Type() == fastjson.TypeArray {
		items, _ := v.Array() //nolint:errcheck
		for i, item := range items {
			issue, err := decodeIssue(item)
			if err != nil {
				return domain.Result{}, fmt.Errorf("issues[%d]: %w", i, err)
			}
			result.Issues = append(result.Issues, issue)
		}
	}

	return result, nil
}

func decodeIssue(v *fastjson.Value) (domain.Issue, error) {
	if v.Type() != fastjson.TypeObject {
		return domain.Issue{}, schemaError("issue must be an object, got %s", v.Type())
	}

	catValue := present(v, "category")
	if catValue == nil {
		return domain.Issue{}, schemaError("issue category is required")
	}
	category, err := stringValue(catValue, "category")
	if err != nil {
		return domain.Issue{}, err
	}
	issue := domain.Issue{Category: category, Severity: domain.SeverityHigh}

	if d := present(v, "description"); d != nil {
		if issue.Description, err = stringValue(d, "description"); err != nil {
			return domain.Issue{}, err
		}
	}
	if s := present(v, "severity"); s != nil {
		severity, err := stringValue(s, "severity")
		if err != nil {
			return domain.Issue{}, err
		}
		issue.Severity = domain.Severity(severity)
		if !issue.Severity.Valid() {
			return domain.Issue{}, schemaError("unknown severity %q", severity)
		}
	}
	if c := present(v, "confidence"); c != nil {
		if issue.Confidence, err = numberValue(c, "confidence"); err != nil {
			return domain.Issue{}, err
		}
	}
	if r := present(v, "blocking_reason"); r != nil {
		if issue.BlockingReason, err = stringValue(r, "blocking_reason"); err != nil {
			return domain.Issue{}, err
		}
	}
	return issue, nil
}

// present returns the field value, treating JSON null as absent.
func present(v *fastjson.Value, key string) *fastjson.Value {
	field := v.Get(key)
	if field == nil || field.Type() == fastjson.TypeNull {
		return nil
	}
	return field
}

func stringValue(v *fastjson.Value, field string) (string, error) {
	b, err := v.StringBytes()
	if err != nil {
		return "", schemaError("%s must be a string, got %s", field, v.Type())
	}
	return string(b), nil
}

func numberValue(v *fastjson.Value, field string) (float64, error) {
	f, err := v.Float64()
	if err != nil {
		return 0, schemaError("%s must be a number, got %s", field, v.Type())
	}
	return domain.ClampConfidence(f), nil
}

func schemaError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrSchemaViolation, fmt.Sprintf(format, args...))
}
