package services

import (
	"encoding/csv"
	"os"
	"regexp"
	"strings"
	"sync"

	"pulse/internal/utils"

	"go.uber.org/zap"
)

// ProfanityService 基于静态屏蔽词表做精确匹配。
// 词表在进程启动时加载一次，之后只读。
type ProfanityService struct {
	words map[string]struct{}
}

var (
	profanityService *ProfanityService
	profanityOnce    sync.Once
)

// GetProfanityService 获取单例屏蔽词服务。
// 词表路径取 PROFANITY_LIST 环境变量，默认 profanity_list.csv。
// 加载失败时降级为空词表并记录日志，不阻塞其他功能。
func GetProfanityService() *ProfanityService {
	profanityOnce.Do(func() {
		path := os.Getenv("PROFANITY_LIST")
		if path == "" {
			path = "profanity_list.csv"
		}
		svc, err := LoadProfanityList(path)
		if err != nil {
			utils.Logger.Warn("加载屏蔽词表失败，将不做屏蔽词过滤",
				zap.String("path", path), zap.Error(err))
			svc = NewProfanityService(nil)
		}
		profanityService = svc
	})
	return profanityService
}

// NewProfanityService 从给定词列表构建服务
func NewProfanityService(words []string) *ProfanityService {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &ProfanityService{words: set}
}

// LoadProfanityList 从 CSV 文件读取屏蔽词表，取每行第一列，
// 首行若为表头 "text" 则跳过
func LoadProfanityList(path string) (*ProfanityService, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(record[0], "text") {
			continue
		}
		words = append(words, record[0])
	}
	return NewProfanityService(words), nil
}

// 词尾的标点等非单词字符在匹配前去掉，比如 "word!" 按 "word" 查表
var trailingNonWordRe = regexp.MustCompile(`\W+$`)

// IsProfane 逐个检查 token 是否命中屏蔽词表
func (s *ProfanityService) IsProfane(tokens []string) bool {
	for _, token := range tokens {
		token = trailingNonWordRe.ReplaceAllString(token, "")
		if token == "" {
			continue
		}
		if _, hit := s.words[token]; hit {
			return true
		}
	}
	return false
}

// ScreenText 按空白切分文本后检查屏蔽词
func (s *ProfanityService) ScreenText(text string) bool {
	return s.IsProfane(strings.Fields(text))
}
