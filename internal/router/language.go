package router

import (
	"fmt"
	"unicode"
)

// Language picks which fixed message set a reply is written in.
type Language int

const (
	English Language = iota
	Chinese          // Traditional
)

// DetectLanguage returns Chinese when text carries any CJK character.
func DetectLanguage(text string) Language {
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return Chinese
		}
	}
	return English
}

func chartMessage(lang Language, n int) string {
	if lang == Chinese {
		return fmt.Sprintf("圖表已生成（請見上方）！這張圖呈現了 %d 位成員在四個面向上的差異。", n)
	}
	if n == 1 {
		return "Chart generated (see above)! It shows 1 person across the four dimensions."
	}
	return fmt.Sprintf("Chart generated (see above)! It shows how %d people differ across the four dimensions.", n)
}

func chartFailedMessage(lang Language) string {
	if lang == Chinese {
		return "抱歉，目前的分析資料無法產生圖表。"
	}
	return "Sorry, a chart could not be generated from the current analysis."
}

func compatibilityMessage(lang Language, a, b string, score int) string {
	if lang == Chinese {
		return fmt.Sprintf("經過綜合計算，%s 與 %s 的性格契合度指數為：**%d 分**。", a, b, score)
	}
	return fmt.Sprintf("After weighing all four dimensions, the compatibility score for %s and %s is **%d**.", a, b, score)
}

func compatibilityDeclinedMessage(lang Language, n int) string {
	if lang == Chinese {
		return fmt.Sprintf("契合度只能在兩個人之間計算，目前的分析包含 %d 位成員。", n)
	}
	return fmt.Sprintf("Compatibility can only be calculated between exactly two people; the current analysis has %d.", n)
}
