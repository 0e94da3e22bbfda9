package sharelink

import "strings"

// Language 是键盘上一个翻译按钮对应的语言。
type Language struct {
	Code  string
	Label string
}

// DefaultLanguages 是机器人键盘默认提供的翻译选项。
var DefaultLanguages = []Language{
	{Code: "ua", Label: "🇺🇦 UA"},
	{Code: "sk", Label: "🇸🇰 SK"},
	{Code: "en", Label: "🇬🇧 EN"},
}

// Variant 是某个语言版本的链接，给键盘组件直接做按钮用。
type Variant struct {
	Language
	URL string
}

// Variants 为每个语言生成改写后的链接；url 为空返回 nil，空代码的语言跳过。
func Variants(url string, langs []Language) []Variant {
	if url == "" {
		return nil
	}
	out := make([]Variant, 0, len(langs))
	for _, l := range langs {
		if l.Code == "" {
			continue
		}
		out = append(out, Variant{Language: l, URL: Rewrite(url, l.Code)})
	}
	return out
}

// ParseLanguages 解析 "ua,sk,en" 这样的列表：转小写、去空白和重复。
// 已知代码沿用 DefaultLanguages 的标签，其余用大写代码做标签。
func ParseLanguages(list string) []Language {
	known := make(map[string]Language, len(DefaultLanguages))
	for _, l := range DefaultLanguages {
		known[l.Code] = l
	}

	var out []Language
	seen := make(map[string]struct{})
	for _, part := range strings.Split(list, ",") {
		code := strings.ToLower(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		if l, ok := known[code]; ok {
			out = append(out, l)
			continue
		}
		out = append(out, Language{Code: code, Label: strings.ToUpper(code)})
	}
	return out
}
