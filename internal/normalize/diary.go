package normalize

// Analysis is the empathy diary's view of one entry.
type Analysis struct {
	Emotion        string `json:"emotion"`
	EmotionEmoji   string `json:"emotionEmoji"`
	Intensity      int    `json:"intensity"`
	EmpathyMessage string `json:"empathyMessage"`
	Advice         string `json:"advice"`
	Affirmation    string `json:"affirmation"`
}

// Per-field defaults for a parsed but incomplete answer.
var analysisDefaults = Analysis{
	Emotion:        "알 수 없음",
	EmotionEmoji:   "💭",
	Intensity:      5,
	EmpathyMessage: "오늘 하루도 수고했어요.",
	Advice:         "내일은 더 좋은 하루가 될 거예요.",
	Affirmation:    "나는 충분히 잘하고 있어요.",
}

// FallbackAnalysis is returned when nothing could be parsed.
var FallbackAnalysis = Analysis{
	Emotion:        "복합적인 감정",
	EmotionEmoji:   "💭",
	Intensity:      5,
	EmpathyMessage: "오늘 하루 정말 수고 많았어요. 당신의 이야기를 들을 수 있어서 기뻐요.",
	Advice:         "잠시 쉬어가며 자신을 돌봐주세요.",
	Affirmation:    "나는 매일 성장하고 있어요.",
}

// DiaryAnalysis maps raw onto Analysis. The boolean reports a fallback.
func DiaryAnalysis(raw string) (Analysis, bool) {
	obj, err := Object(raw)
	if err != nil {
		return FallbackAnalysis, true
	}

	a := Analysis{
		Emotion:        orDefault(stringField(obj["emotion"]), analysisDefaults.Emotion),
		EmotionEmoji:   orDefault(stringField(obj["emotionEmoji"]), analysisDefaults.EmotionEmoji),
		Intensity:      analysisDefaults.Intensity,
		EmpathyMessage: orDefault(stringField(obj["empathyMessage"]), analysisDefaults.EmpathyMessage),
		Advice:         orDefault(stringField(obj["advice"]), analysisDefaults.Advice),
		Affirmation:    orDefault(stringField(obj["affirmation"]), analysisDefaults.Affirmation),
	}
	// 0 means the model left the score out.
	if n, ok := intField(obj["intensity"]); ok && n != 0 {
		a.Intensity = min(max(n, 1), 10)
	}
	return a, false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
