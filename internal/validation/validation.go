package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Errors 字段->错误消息列表 的校验错误映射，直接作为422响应体输出
type Errors map[string][]string

// Add 追加一条字段错误
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any 是否存在校验错误
func (e Errors) Any() bool {
	return len(e) > 0
}

// Translate 将绑定校验错误转换为字段错误映射
func Translate(err error) Errors {
	result := Errors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// 非字段级错误（如JSON语法错误）统一挂在message键下
		result.Add("message", err.Error())
		return result
	}

	for _, fe := range verrs {
		field := SnakeCase(fe.Field())
		result.Add(field, message(field, fe))
	}
	return result
}

// message 按校验标签生成错误消息
func message(field string, fe validator.FieldError) string {
	name := DisplayName(field)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", name, fe.Param())
	case "max":
		return fmt.Sprintf("The %s must not be greater than %s characters.", name, fe.Param())
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", name)
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}

// MsgTaken 唯一性冲突
func MsgTaken(field string) string {
	return fmt.Sprintf("The %s has already been taken.", DisplayName(field))
}

// MsgExists 外键引用不存在
func MsgExists(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", DisplayName(field))
}

// MsgRequired 必填
func MsgRequired(field string) string {
	return fmt.Sprintf("The %s field is required.", DisplayName(field))
}

// MsgMimes 文件类型不合法
func MsgMimes(field string, types []string) string {
	return fmt.Sprintf("The %s must be a file of type: %s.", DisplayName(field), strings.Join(types, ", "))
}

// MsgMaxKilobytes 文件超出大小限制
func MsgMaxKilobytes(field string, kb int64) string {
	return fmt.Sprintf("The %s must not be greater than %d kilobytes.", DisplayName(field), kb)
}

// MsgConfirmed 确认字段不一致
func MsgConfirmed(field string) string {
	return fmt.Sprintf("The %s confirmation does not match.", DisplayName(field))
}

// MsgMinChars 长度下限
func MsgMinChars(field string, n int) string {
	return fmt.Sprintf("The %s must be at least %d characters.", DisplayName(field), n)
}

// MsgMixedCase 需要同时包含大小写字母
func MsgMixedCase(field string) string {
	return fmt.Sprintf("The %s must contain at least one uppercase and one lowercase letter.", DisplayName(field))
}

// MsgNumbers 需要包含数字
func MsgNumbers(field string) string {
	return fmt.Sprintf("The %s must contain at least one number.", DisplayName(field))
}

// MsgSymbols 需要包含符号
func MsgSymbols(field string) string {
	return fmt.Sprintf("The %s must contain at least one symbol.", DisplayName(field))
}

// SnakeCase 将结构体字段名转换为请求参数风格，如 CategoryID -> category_id
func SnakeCase(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// 连续大写（如ID）只在词首加下划线
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayName 将参数名转换为消息里的展示名，如 category_id -> category id
func DisplayName(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
