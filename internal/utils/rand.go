package utils

import (
	"math/rand"
	"regexp"
)

const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const (
	letterIdxBits = 6                    // 62 个字符需要 6 bit
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // 每个 int63 能切出的索引数
)

// RandStringBytesMaskImpr 生成指定长度的随机字符串，用作帖子/评论的公开 id
func RandStringBytesMaskImpr(n int) string {
	b := make([]byte, n)
	for i, cache, remain := n-1, rand.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}
	return string(b)
}

var hashtagRe = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags 从帖子描述中提取话题标签（不含 # 前缀），保留出现顺序
func ExtractHashtags(caption string) []string {
	matches := hashtagRe.FindAllStringSubmatch(caption, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}
