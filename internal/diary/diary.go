// Package diary reads a one-line diary entry back to its author with an
// emotion reading and a few kind words.
package diary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fridgechef/internal/apperr"
	"fridgechef/internal/llm"
	"fridgechef/internal/logging"
	"fridgechef/internal/normalize"
)

const (
	MsgEntryRequired = "일기 내용을 입력해주세요."
	MsgAnalyzeFailed = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// DefaultMaxTokens bounds the analysis answer.
const DefaultMaxTokens = 1000

const analysisPrompt = `당신은 따뜻하고 공감 능력이 뛰어난 심리 상담사입니다.
사용자가 오늘 있었던 일을 한 줄로 작성했습니다.
이 내용을 읽고 감정을 분석하여 진심 어린 공감과 위로의 메시지를 전해주세요.

사용자의 일기: %q

반드시 아래 JSON 형식으로만 응답해주세요. 다른 설명은 하지 마세요.
{
  "emotion": "주요 감정 (예: 기쁨, 슬픔, 분노, 불안, 피로, 외로움, 설렘, 감사 등)",
  "emotionEmoji": "감정을 나타내는 이모지 하나",
  "intensity": "감정 강도 (1-10)",
  "empathyMessage": "2-3문장의 따뜻하고 진심 어린 공감 메시지",
  "advice": "상황에 맞는 부드러운 조언이나 격려 한 문장",
  "affirmation": "오늘 하루를 마무리하는 긍정 확언 한 문장"
}`

type Analyzer struct {
	model     llm.Client
	maxTokens int
}

func NewAnalyzer(model llm.Client, maxTokens int) *Analyzer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Analyzer{model: model, maxTokens: maxTokens}
}

// Analyze asks the model about entry. An unreadable answer is replaced by
// normalize.FallbackAnalysis rather than failing the request.
func (a *Analyzer) Analyze(ctx context.Context, entry string) (normalize.Analysis, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return normalize.Analysis{}, apperr.Validation(MsgEntryRequired)
	}

	raw, err := a.model.Complete(ctx, llm.Request{
		Prompt:    fmt.Sprintf(analysisPrompt, entry),
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		return normalize.Analysis{}, apperr.Upstream(MsgAnalyzeFailed, err)
	}

	analysis, fallback := normalize.DiaryAnalysis(raw)
	if fallback {
		logging.FromContext(ctx).Warn("diary answer not parseable", slog.Int("raw_len", len(raw)))
	}
	return analysis, nil
}
