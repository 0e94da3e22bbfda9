// Package sharelink 处理社交平台分享链接：<scheme>://<host>/<user>/status/<id>[/<lang>]。
//
// 末尾的两字母段被视为“语言后缀”（翻译版本），这里负责替换或追加它。
// 只认这一种固定路径形状，不做通用 URL 解析。
package sharelink

import "strings"

// Outcome 描述一次改写做了什么，主要用于指标。
type Outcome string

const (
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeReplaced  Outcome = "replaced"
	OutcomeAppended  Outcome = "appended"
)

// Rewrite 把链接的语言后缀改成 lang。
//
//   - url 或 lang 为空：原样返回
//   - 状态 id 后面已有两字母段（已知或未知语言都算）：替换
//   - 否则追加 /<lang>
//
// 不返回错误：形状不对的链接按“没有后缀”处理，直接追加。
// 对同一个 lang 重复调用结果不变。
func Rewrite(url, lang string) string {
	out, _ := RewriteOutcome(url, lang)
	return out
}

// RewriteOutcome 同 Rewrite，额外返回做了哪种改写。
func RewriteOutcome(url, lang string) (string, Outcome) {
	if url == "" || lang == "" {
		return url, OutcomeUnchanged
	}
	if start, ok := suffixStart(url, lang); ok {
		out := url[:start] + lang
		if out == url {
			return url, OutcomeUnchanged
		}
		return out, OutcomeReplaced
	}
	return url + "/" + lang, OutcomeAppended
}

// Suffix 返回链接现有的两字母语言后缀。
func Suffix(url string) (string, bool) {
	start, ok := suffixStart(url, "")
	if !ok {
		return "", false
	}
	return url[start:], true
}

// suffixStart 返回末尾语言段的起始下标。
// 已经以 /<lang> 结尾时直接命中（形状不对的链接追加一次后也保持幂等）；
// 否则末段必须恰好是两个 ASCII 字母，且前一段是纯数字的状态 id。
func suffixStart(url, lang string) (int, bool) {
	if lang != "" && strings.HasSuffix(url, "/"+lang) {
		return len(url) - len(lang), true
	}
	cut := strings.LastIndexByte(url, '/')
	if cut < 0 {
		return 0, false
	}
	if !isLangCode(url[cut+1:]) {
		return 0, false
	}
	head := url[:cut]
	id := head[strings.LastIndexByte(head, '/')+1:]
	if !isDigits(id) {
		return 0, false
	}
	return cut + 1, true
}

func isLangCode(s string) bool {
	return len(s) == 2 && isASCIILetter(s[0]) && isASCIILetter(s[1])
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
