package excel

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

// XlDVType
var validationTypes = map[string]int{
	"whole":       1,
	"decimal":     2,
	"list":        3,
	"date":        4,
	"time":        5,
	"text_length": 6,
	"custom":      7,
}

// ValidationTypes lists the accepted data validation types.
func ValidationTypes() []string {
	return []string{"whole", "decimal", "list", "date", "time", "text_length", "custom"}
}

// XlFormatConditionOperator
const (
	xlBetween      = 1
	xlEqual        = 3
	xlGreater      = 5
	xlLess         = 6
	xlGreaterEqual = 7
	xlLessEqual    = 8
	xlNotEqual     = 4
	xlNotBetween   = 2
)

const xlValidAlertStop = 1

// Validation restricts what can be typed into a range. Formula2 is the
// upper bound of the range check for the numeric, date and length types;
// without it Formula1 is a lower bound.
type Validation struct {
	Type       string
	Formula1   string
	Formula2   string
	AllowBlank bool
}

// AddDataValidation replaces the validation rule of a range.
func AddDataValidation(app com.Object, sheetName, rangeStr string, v Validation) (*Formatted, error) {
	kind, ok := validationTypes[strings.ToLower(v.Type)]
	if !ok {
		return nil, office.InvalidArgument("unknown validation type %q; expected %s", v.Type, strings.Join(ValidationTypes(), ", "))
	}
	if v.Formula1 == "" {
		return nil, office.InvalidArgument("formula1 is empty")
	}
	args := []any{kind, xlValidAlertStop, xlBetween, v.Formula1}
	switch {
	case kind == validationTypes["list"] || kind == validationTypes["custom"]:
	case v.Formula2 != "":
		args = append(args, v.Formula2)
	default:
		args[2] = xlGreaterEqual
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		validation, err := s.GetObject(r, "Validation")
		if err != nil {
			return err
		}
		if _, err := validation.Call("Delete"); err != nil {
			return err
		}
		// Type, AlertStyle, Operator, Formula1, Formula2
		if _, err := validation.Call("Add", args...); err != nil {
			return errors.Wrapf(err, "failed to validate %s", rangeStr)
		}
		return validation.Put("IgnoreBlank", v.AllowBlank)
	})
}

// XlFormatConditionType
const (
	xlCellValue  = 1
	xlExpression = 2
)

var conditionOperators = map[string]int{
	"between":          xlBetween,
	"not_between":      xlNotBetween,
	"equal":            xlEqual,
	"not_equal":        xlNotEqual,
	"greater":          xlGreater,
	"less":             xlLess,
	"greater_or_equal": xlGreaterEqual,
	"less_or_equal":    xlLessEqual,
}

// ConditionTypes lists the accepted conditional format types.
func ConditionTypes() []string {
	return []string{"cell", "expression", "color_scale", "data_bar"}
}

// ConditionCriteria lists the comparisons of the "cell" type.
func ConditionCriteria() []string {
	return []string{"between", "not_between", "equal", "not_equal", "greater", "less", "greater_or_equal", "less_or_equal"}
}

// Condition is a conditional format rule. "cell" compares each value
// using Criteria against Value (and Value2 for the between forms),
// "expression" applies when the formula in Value is true. Colors apply to
// those two types; "color_scale" and "data_bar" use Excel's defaults.
type Condition struct {
	Type      string
	Criteria  string
	Value     string
	Value2    string
	FontColor string
	BgColor   string
}

func (c Condition) arguments() ([]any, error) {
	switch strings.ToLower(c.Type) {
	case "cell":
		operator, ok := conditionOperators[strings.ToLower(c.Criteria)]
		if !ok {
			return nil, office.InvalidArgument("unknown criteria %q; expected %s", c.Criteria, strings.Join(ConditionCriteria(), ", "))
		}
		if c.Value == "" {
			return nil, office.InvalidArgument("value is empty")
		}
		args := []any{xlCellValue, operator, c.Value}
		if operator == xlBetween || operator == xlNotBetween {
			if c.Value2 == "" {
				return nil, office.InvalidArgument("value2 is required for %s", c.Criteria)
			}
			args = append(args, c.Value2)
		}
		return args, nil
	case "expression":
		if c.Value == "" {
			return nil, office.InvalidArgument("value must hold the formula")
		}
		formula := c.Value
		if !strings.HasPrefix(formula, "=") {
			formula = "=" + formula
		}
		// Excel ignores the operator of expressions.
		return []any{xlExpression, xlBetween, formula}, nil
	}
	return nil, office.InvalidArgument("unknown condition type %q; expected %s", c.Type, strings.Join(ConditionTypes(), ", "))
}

// SetConditionalFormat adds a conditional format rule to a range.
func SetConditionalFormat(app com.Object, sheetName, rangeStr string, c Condition) (*Formatted, error) {
	kind := strings.ToLower(c.Type)
	var (
		args      []any
		fontColor int
		bgColor   int
		err       error
	)
	if kind != "color_scale" && kind != "data_bar" {
		if args, err = c.arguments(); err != nil {
			return nil, err
		}
		if c.FontColor == "" && c.BgColor == "" {
			return nil, office.InvalidArgument("font_color or bg_color is required")
		}
		if c.FontColor != "" {
			if fontColor, err = com.Color(c.FontColor); err != nil {
				return nil, office.InvalidArgument("%v", err)
			}
		}
		if c.BgColor != "" {
			if bgColor, err = com.Color(c.BgColor); err != nil {
				return nil, office.InvalidArgument("%v", err)
			}
		}
	}
	return onRange(app, sheetName, rangeStr, func(s *com.Scope, r com.Object) error {
		conditions, err := s.GetObject(r, "FormatConditions")
		if err != nil {
			return err
		}
		switch kind {
		case "color_scale":
			_, err := s.CallObject(conditions, "AddColorScale", 3)
			return errors.Wrapf(err, "failed to add color scale to %s", rangeStr)
		case "data_bar":
			_, err := s.CallObject(conditions, "AddDatabar")
			return errors.Wrapf(err, "failed to add data bar to %s", rangeStr)
		}
		condition, err := s.CallObject(conditions, "Add", args...)
		if err != nil {
			return errors.Wrapf(err, "failed to add condition to %s", rangeStr)
		}
		if c.FontColor != "" {
			font, err := s.GetObject(condition, "Font")
			if err != nil {
				return err
			}
			if err := font.Put("Color", fontColor); err != nil {
				return err
			}
		}
		if c.BgColor != "" {
			interior, err := s.GetObject(condition, "Interior")
			if err != nil {
				return err
			}
			if err := interior.Put("Color", bgColor); err != nil {
				return err
			}
		}
		return nil
	})
}
