package domain

// Lexicon bundles the static matching tables: the primary emotion
// keyword lists, the weaker semantic trigger rules, and the stopword set.
// A Lexicon is built once and read-only afterwards.
type Lexicon struct {
	keywords map[Emotion][]string
	rules    map[Emotion][]string
	index    map[string]Emotion
	stop     map[string]struct{}
}

// NewLexicon builds a lexicon from explicit tables. Keyword lists keep
// their given order; the keyword index maps each keyword to its category.
func NewLexicon(keywords, rules map[Emotion][]string, stopwords []string) *Lexicon {
	lex := &Lexicon{
		keywords: make(map[Emotion][]string, len(keywords)),
		rules:    make(map[Emotion][]string, len(rules)),
		index:    make(map[string]Emotion),
		stop:     make(map[string]struct{}, len(stopwords)),
	}
	for e, kws := range keywords {
		lex.keywords[e] = append([]string(nil), kws...)
		for _, kw := range kws {
			lex.index[kw] = e
		}
	}
	for e, triggers := range rules {
		lex.rules[e] = append([]string(nil), triggers...)
	}
	for _, w := range stopwords {
		lex.stop[w] = struct{}{}
	}
	return lex
}

// Keywords returns the keyword list for a category.
func (l *Lexicon) Keywords(e Emotion) []string { return l.keywords[e] }

// Rules returns the semantic trigger list for a category.
func (l *Lexicon) Rules(e Emotion) []string { return l.rules[e] }

// CategoryOf returns the category a keyword belongs to via exact lookup.
func (l *Lexicon) CategoryOf(word string) (Emotion, bool) {
	e, ok := l.index[word]
	return e, ok
}

// IsStopword reports whether the word is in the stopword set.
func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.stop[word]
	return ok
}

// defaultKeywords is the primary emotion lexicon: each category's
// representative vocabulary, ordered by representativeness.
var defaultKeywords = map[Emotion][]string{
	EmotionJoy: {
		"开心", "快乐", "高兴", "喜悦", "欢乐", "愉快", "兴奋", "幸福", "欣喜", "笑容",
	},
	EmotionWarmth: {
		"温暖", "温馨", "温柔", "暖心", "贴心", "关怀", "拥抱", "陪伴", "安心", "感动",
	},
	EmotionLonging: {
		"思念", "想念", "怀念", "牵挂", "惦记", "回忆", "记忆", "梦见", "重逢", "怀旧",
	},
	EmotionLoss: {
		"失落", "失去", "空虚", "孤独", "寂寞", "遗憾", "落寞", "错过", "叹息", "遗失",
	},
	EmotionSorrow: {
		"忧伤", "悲伤", "难过", "伤心", "哀伤", "心痛", "泪水", "哭泣", "惆怅", "悲凉",
	},
	EmotionAnticipation: {
		"期待", "盼望", "希望", "憧憬", "向往", "期盼", "渴望", "梦想", "愿望", "迫不及待",
	},
	EmotionHelplessness: {
		"无助", "无奈", "迷茫", "彷徨", "困惑", "茫然", "无力", "不知所措", "孤立", "绝望",
	},
	EmotionCalm: {
		"平静", "宁静", "安静", "平和", "淡然", "从容", "安宁", "祥和", "悠闲", "释然",
	},
}

// defaultRules are the semantic triggers: weaker, context-style cues that
// suggest a category without being representative vocabulary for it.
var defaultRules = map[Emotion][]string{
	EmotionLonging:      {"过去", "从前", "以前", "当年", "那时", "曾经", "记得", "还记得"},
	EmotionLoss:         {"不再", "失去", "没有了", "结束", "完了", "破碎", "散了"},
	EmotionAnticipation: {"未来", "明天", "将来", "希冀", "但愿", "如果", "要是"},
	EmotionHelplessness: {"不知道", "怎么办", "不懂", "不会", "不能", "无法"},
	EmotionWarmth:       {"家", "妈妈", "爸爸", "朋友", "陪伴", "一起", "拥抱"},
	EmotionSorrow:       {"眼泪", "哭", "痛", "伤", "苦", "难受", "心碎"},
	EmotionJoy:          {"笑", "哈哈", "开心", "棒", "好", "赞", "太好了"},
	EmotionCalm:         {"静", "安", "稳", "缓", "慢", "轻", "淡"},
}

// defaultStopwords are filtered out during tokenization. Single-character
// words never survive the length filter, so only multi-character function
// words are listed.
var defaultStopwords = []string{
	"我们", "你们", "他们", "她们", "它们", "这个", "那个", "这些", "那些",
	"什么", "怎么", "这样", "那样", "因为", "所以", "但是", "虽然", "然后",
	"还是", "就是", "觉得", "知道", "可以", "应该", "已经", "正在", "没有",
	"一个", "一些", "有点", "非常", "十分", "而且", "或者", "以及", "对于",
	"自己", "大家", "时候", "现在", "今天", "昨天", "地方", "东西",
}

// defaultLexicon is built once at startup.
var defaultLexicon = NewLexicon(defaultKeywords, defaultRules, defaultStopwords)

// DefaultLexicon returns the built-in Simplified Chinese emotion lexicon.
func DefaultLexicon() *Lexicon { return defaultLexicon }
