package validation

import (
	"reflect"
	"strconv"
	"strings"
)

// FieldRule is the client-facing view of one field's `validate` tag, so forms
// can check input with the same constraints the API enforces.
type FieldRule struct {
	Field     string   `json:"field"`
	Tag       string   `json:"tag"`
	Required  bool     `json:"required"`
	MinLength int      `json:"minLength,omitempty"`
	MaxLength int      `json:"maxLength,omitempty"`
	Email     bool     `json:"email,omitempty"`
	Phone     bool     `json:"phone,omitempty"`
	UUID      bool     `json:"uuid,omitempty"`
	OneOf     []string `json:"oneOf,omitempty"`
}

// Check returns the message for the first failed constraint, or "".
func (r FieldRule) Check(value string) string {
	if value == "" && !r.Required {
		return ""
	}
	tag := strings.TrimPrefix(strings.TrimPrefix(r.Tag, "omitnil,"), "omitempty,")
	if err := Var(r.Field, value, tag); err != nil {
		if verr, ok := err.(*Error); ok && len(verr.Fields) > 0 {
			return verr.Fields[0].Message
		}
		return err.Error()
	}
	return ""
}

// ParseRule reads a `validate` tag such as "required,min=2,max=50".
func ParseRule(field, tag string) FieldRule {
	rule := FieldRule{Field: field, Tag: tag}
	for _, part := range strings.Split(tag, ",") {
		name, param, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch name {
		case "required":
			rule.Required = true
		case "min":
			rule.MinLength, _ = strconv.Atoi(param)
		case "max":
			rule.MaxLength, _ = strconv.Atoi(param)
		case "email":
			rule.Email = true
		case "phone":
			rule.Phone = true
		case "uuid", "uuid4":
			rule.UUID = true
		case "oneof":
			rule.OneOf = strings.Fields(param)
		}
	}
	return rule
}

// FieldRules lists the rules of every tagged field of the struct v, in
// declaration order.
func FieldRules(v interface{}) []FieldRule {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	rules := make([]FieldRule, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}
		rules = append(rules, ParseRule(jsonFieldName(field), tag))
	}
	return rules
}
