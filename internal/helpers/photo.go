package helpers

import (
	"net/url"
	"strings"
)

// サービス終了した pravatar.cc のURLがDBに残っているため、
// 該当URLと未設定はDiceBearのイニシャルアバターに差し替える。
const avatarBaseURL = "https://api.dicebear.com/8.x/initials/svg?seed="

func safePhotoURL(name string, raw *string) string {
	if raw != nil && *raw != "" && !strings.Contains(*raw, "pravatar.cc") {
		return *raw
	}
	return avatarBaseURL + url.QueryEscape(name)
}
