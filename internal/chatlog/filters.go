package chatlog

import "strings"

// nameSuffixes are attachment markers that exports sometimes glue onto the
// sender column.
var nameSuffixes = []string{
	"[貼圖]", "[照片]", "[影片]", "[檔案]", "[語音訊息]", "[相簿]",
	"[Sticker]", "[Photo]", "[Video]", "[File]", "[Voice message]", "[Album]",
}

// placeholderMessages replace the body of non-text messages.
var placeholderMessages = map[string]bool{
	"[貼圖]": true, "[照片]": true, "[影片]": true, "[檔案]": true,
	"[語音訊息]": true, "[相簿]": true, "[記事本]": true, "[位置資訊]": true, "[聯絡資訊]": true,
	"[Sticker]": true, "[Photo]": true, "[Video]": true, "[File]": true,
	"[Voice message]": true, "[Album]": true, "[Note]": true, "[Location]": true, "[Contact]": true,
}

// systemNotices mark call logs and group membership events.
var systemNotices = []string{
	"通話時間", "未接來電", "已取消通話", "☎",
	"已收回訊息", "unsent a message",
	"Call time", "Missed call", "Canceled call",
	"加入群組", "離開群組", "已將群組名稱",
	"joined the group", "left the group", "invited you to", "changed the group name",
}

// reservedSpeakers never name a person: day headers, pronouns, system rows.
var reservedSpeakers = []string{
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	"週一", "週二", "週三", "週四", "週五", "週六", "週日",
	"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日",
	"You", "Me", "I", "你", "我", "您",
	"System", "系統",
}

func stripNameSuffixes(name string) string {
	for {
		trimmed := name
		for _, suf := range nameSuffixes {
			trimmed = strings.TrimSuffix(trimmed, suf)
		}
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == name {
			return name
		}
		name = trimmed
	}
}

func isNoise(msg string) bool {
	if placeholderMessages[msg] {
		return true
	}
	for _, notice := range systemNotices {
		if strings.Contains(msg, notice) {
			return true
		}
	}
	return false
}

func isReservedSpeaker(name string) bool {
	for _, r := range reservedSpeakers {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}
