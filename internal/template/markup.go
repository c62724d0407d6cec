package template

import (
	"regexp"
	"strings"
)

// 编辑器里占位符渲染成不可编辑的chip，data-key带friendly标签。
// 回转时按data-key还原占位符，chip内部文字被改了也不影响，
// 再清理编辑器自己产生的包装标签。
// b/i/u/s/blockquote/code/tg-spoiler这些格式标签原样透传，telegram认识。

const chipPrefix = `<span class="tpl-token" contenteditable="false" data-key="`

var (
	chipRe    = regexp.MustCompile(`(?s)<span[^>]*?data-key="([^"]*)"[^>]*>.*?</span>`)
	brRe      = regexp.MustCompile(`<br\s*/?>`)
	divStubRe = regexp.MustCompile(`<br\s*/?>\s*</div>`)
	divOpenRe = regexp.MustCompile(`<div[^>]*>`)
	wrapperRe = regexp.MustCompile(`</?(?:span|font)[^>]*>`)
)

// ToDisplayMarkup 把friendly模板转成编辑器的HTML形态：
// 标签变chip，换行变<br>
func ToDisplayMarkup(friendly string) string {
	s := friendly
	for _, tok := range Tokens {
		chip := chipPrefix + tok.Label + `">` + tok.Label + `</span>`
		s = strings.ReplaceAll(s, tok.Label, chip)
	}
	return strings.ReplaceAll(s, "\n", "<br>")
}

// FromDisplayMarkup 把编辑器HTML还原成friendly模板。
// 顺序不能乱：先抽data-key，再换行，最后剥掉span/font包装，
// 否则剥包装会把chip连同里面的key一起破坏掉。
func FromDisplayMarkup(markup string) string {
	s := chipRe.ReplaceAllString(markup, "$1")
	// contenteditable用<div>包行，空行是<div><br></div>，
	// 里面的<br>只是占位，先丢掉免得多出一个换行
	s = divStubRe.ReplaceAllString(s, "</div>")
	s = divOpenRe.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "</div>", "")
	s = brRe.ReplaceAllString(s, "\n")
	s = wrapperRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	// 首行也被div包住时会带出一个开头换行
	return strings.TrimPrefix(s, "\n")
}
