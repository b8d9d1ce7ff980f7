package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// StripTags 去除全部HTML标签，用于名称、标题等纯文本字段
func StripTags(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// CleanHTML 清洗富文本，保留安全的用户内容标签
func CleanHTML(s string) string {
	return ugc.Sanitize(s)
}
