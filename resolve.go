package chatmbti

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnknownLocale is returned when a locale tag has no built-in catalog.
var ErrUnknownLocale = errors.New("unknown locale")

// Locale is the catalog of display strings used to resolve codes and missing
// values. Every lookup has a fallback so resolution never fails.
type Locale struct {
	Tag string `yaml:"tag"` // BCP 47 tag used for number formatting

	TimeBuckets      map[string]string `yaml:"time_buckets"` // morning, afternoon, evening, night
	NoDominantPeriod string            `yaml:"no_dominant_period"`
	ConfidenceLevels map[string]string `yaml:"confidence_levels"` // low, medium, high
	AxisNames        map[Axis]string   `yaml:"axis_names"`
	PanelTitles      map[Panel]string  `yaml:"panel_titles"`

	Placeholders Placeholders `yaml:"placeholders"`
	Captions     Captions     `yaml:"captions"`
	Status       StatusText   `yaml:"status"`
	Form         FormText     `yaml:"form"`
}

// Placeholders are shown in place of missing or empty data.
type Placeholders struct {
	AxisEvidence     string `yaml:"axis_evidence"` // %s is the pole name
	TopWords         string `yaml:"top_words"`
	TopEmojis        string `yaml:"top_emojis"`
	Samples          string `yaml:"samples"`
	AmbiguousAxes    string `yaml:"ambiguous_axes"`
	Type             string `yaml:"type"`
	NotANumber       string `yaml:"not_a_number"`
	NoData           string `yaml:"no_data"`
	Confidence       string `yaml:"confidence"`
	Report           string `yaml:"report"`
	Persona          string `yaml:"persona"`
	SenderUnresolved string `yaml:"sender_unresolved"`
}

// Captions label the fields inside panels.
type Captions struct {
	Label            string `yaml:"label"`
	Keyword          string `yaml:"keyword"`
	AmbiguousAxes    string `yaml:"ambiguous_axes"`
	AxisEvidence     string `yaml:"axis_evidence"`
	ActivePeriod     string `yaml:"active_period"`
	TopWords         string `yaml:"top_words"`
	TopEmojis        string `yaml:"top_emojis"`
	Samples          string `yaml:"samples"`
	Score            string `yaml:"score"` // %s is the score
	WordCount        string `yaml:"word_count"`
	DataAmount       string `yaml:"data_amount"`
	SourceDiversity  string `yaml:"source_diversity"`
	FileCount        string `yaml:"file_count"`
	NameInput        string `yaml:"name_input"`
	SenderResolved   string `yaml:"sender_resolved"`
	NicknameAdvisory string `yaml:"nickname_advisory"`
	Persona          string `yaml:"persona"` // %s is the type
}

// StatusText holds submission status messages.
type StatusText struct {
	Loading           string `yaml:"loading"`
	Success           string `yaml:"success"`
	MissingName       string `yaml:"missing_name"`
	MissingFiles      string `yaml:"missing_files"`
	Failure           string `yaml:"failure"` // %s is the error detail
	MalformedResponse string `yaml:"malformed_response"`
	Copied            string `yaml:"copied"`
	CopyFailed        string `yaml:"copy_failed"` // %s is the error detail
}

// FormText holds input surface strings.
type FormText struct {
	NamePrompt  string `yaml:"name_prompt"`
	FilesPrompt string `yaml:"files_prompt"`
	NoFiles     string `yaml:"no_files"`
	OneFile     string `yaml:"one_file"`   // %s is the file name
	ManyFiles   string `yaml:"many_files"` // %d total, %s first name, %d rest
	NotFound    string `yaml:"not_found"`  // %s is the entered path or pattern
	FilesHint   string `yaml:"files_hint"` // Placeholder of the empty file field
	Hint        string `yaml:"hint"`
}

// English returns the built-in English catalog.
func English() Locale {
	return Locale{
		Tag: "en",
		TimeBuckets: map[string]string{
			"morning":   "06:00–12:00",
			"afternoon": "12:00–18:00",
			"evening":   "18:00–24:00",
			"night":     "00:00–06:00",
		},
		NoDominantPeriod: "no dominant period detected",
		ConfidenceLevels: map[string]string{
			"low":    "Low",
			"medium": "Medium",
			"high":   "High",
		},
		AxisNames: map[Axis]string{
			AxisE: "Extraversion",
			AxisI: "Introversion",
			AxisS: "Sensing",
			AxisN: "Intuition",
			AxisT: "Thinking",
			AxisF: "Feeling",
			AxisJ: "Judging",
			AxisP: "Perceiving",
		},
		PanelTitles: map[Panel]string{
			PanelOverview:   "Overview",
			PanelLabel:      "Label",
			PanelTraits:     "Trait summary",
			PanelEvidence:   "Behavioral evidence",
			PanelConfidence: "Confidence",
			PanelMetadata:   "Analysis metadata",
			PanelReport:     "Report",
			PanelPersona:    "Persona",
		},
		Placeholders: Placeholders{
			AxisEvidence:     "Not much evidence points to %s.",
			TopWords:         "No frequently repeated words.",
			TopEmojis:        "No frequently used emoji stood out.",
			Samples:          "Not enough example messages to show.",
			AmbiguousAxes:    "Every axis leaned clearly to one side this time.",
			Type:             "????",
			NotANumber:       "-",
			NoData:           "no data",
			Confidence:       "Confidence could not be calculated.",
			Report:           "No report was generated.",
			Persona:          "No persona overview.",
			SenderUnresolved: "(resolution failed)",
		},
		Captions: Captions{
			Label:            "Your one-line summary",
			Keyword:          "Keyword: %s",
			AmbiguousAxes:    "Ambiguous axes",
			AxisEvidence:     "Evidence per axis",
			ActivePeriod:     "Most active period",
			TopWords:         "Frequent words",
			TopEmojis:        "Frequent emoji and reactions",
			Samples:          "Example messages",
			Score:            "Confidence %s / 100",
			WordCount:        "Words %s",
			DataAmount:       "Data amount score",
			SourceDiversity:  "Source diversity score",
			FileCount:        "Uploaded files",
			NameInput:        "Name you entered",
			SenderResolved:   "Sender used for analysis",
			NicknameAdvisory: "If the sender used for analysis is not you, check that your nickname matches the one in the exported chat exactly.",
			Persona:          "%s summary",
		},
		Status: StatusText{
			Loading:           "Analyzing conversations...",
			Success:           "Analysis complete. Take a look at your results.",
			MissingName:       "Enter your chat display name first.",
			MissingFiles:      "Select at least one exported chat file.",
			Failure:           "Analysis failed: %s",
			MalformedResponse: "the server returned a response that could not be read",
			Copied:            "Report copied to clipboard.",
			CopyFailed:        "Copy failed: %s",
		},
		Form: FormText{
			NamePrompt:  "Name",
			FilesPrompt: "Files",
			NoFiles:     "No files selected",
			OneFile:     "1 file selected: %s",
			ManyFiles:   "%d files selected: %s and %d more",
			NotFound:    "No file matches %s",
			FilesHint:   "path or glob, enter to add",
			Hint:        "Enter your chat display name, add exported chat files, then press ctrl+s to analyze.",
		},
	}
}

// Korean returns the built-in Korean catalog.
func Korean() Locale {
	return Locale{
		Tag: "ko",
		TimeBuckets: map[string]string{
			"morning":   "아침 (6~12시)",
			"afternoon": "낮/오후 (12~18시)",
			"evening":   "저녁 (18~24시)",
			"night":     "새벽/밤 (0~6시)",
		},
		NoDominantPeriod: "특정 시간대가 두드러지지 않습니다.",
		ConfidenceLevels: map[string]string{
			"low":    "낮음",
			"medium": "보통",
			"high":   "높음",
		},
		AxisNames: map[Axis]string{
			AxisE: "외향",
			AxisI: "내향",
			AxisS: "감각",
			AxisN: "직관",
			AxisT: "사고",
			AxisF: "감정",
			AxisJ: "판단",
			AxisP: "인식",
		},
		PanelTitles: map[Panel]string{
			PanelOverview:   "개요",
			PanelLabel:      "한 줄 요약",
			PanelTraits:     "MBTI 요약",
			PanelEvidence:   "행동 근거",
			PanelConfidence: "신뢰도",
			PanelMetadata:   "분석 메타 정보",
			PanelReport:     "AI 리포트",
			PanelPersona:    "페르소나",
		},
		Placeholders: Placeholders{
			AxisEvidence:     "%s 쪽으로 뚜렷하게 설명할 근거가 많지 않습니다.",
			TopWords:         "뚜렷하게 반복되는 단어가 없습니다.",
			TopEmojis:        "자주 쓰는 이모티콘이 뚜렷하게 나타나지 않았습니다.",
			Samples:          "표시할 만한 예시 문장이 충분하지 않습니다.",
			AmbiguousAxes:    "이번 분석에서는 대부분의 축이 한쪽으로 뚜렷하게 기울어져 있습니다.",
			Type:             "????",
			NotANumber:       "-",
			NoData:           "정보 없음",
			Confidence:       "신뢰도 정보를 계산할 수 없어요.",
			Report:           "생성된 리포트가 없습니다.",
			Persona:          "페르소나 요약이 없습니다.",
			SenderUnresolved: "(감지 실패)",
		},
		Captions: Captions{
			Label:            "나만의 한 줄 요약",
			Keyword:          "키워드: %s",
			AmbiguousAxes:    "애매한 축",
			AxisEvidence:     "MBTI 축별 근거",
			ActivePeriod:     "가장 많이 대화하는 시간대",
			TopWords:         "자주 쓰는 단어",
			TopEmojis:        "자주 쓰는 이모티콘 / 반응",
			Samples:          "실제 대화 예시",
			Score:            "신뢰도 %s / 100",
			WordCount:        "단어 수 %s",
			DataAmount:       "데이터 양 점수",
			SourceDiversity:  "소스 다양성 점수",
			FileCount:        "업로드한 파일 수",
			NameInput:        "입력한 내 이름",
			SenderResolved:   "실제로 분석에 사용된 이름(대화 내 발화자)",
			NicknameAdvisory: "만약 \"실제로 분석에 사용된 이름\"이 내가 아닌 다른 사람으로 보인다면, 카톡 내보내기 파일에서 닉네임이 정확히 일치하는지 다시 확인해주세요.",
			Persona:          "%s 요약",
		},
		Status: StatusText{
			Loading:           "카카오톡 대화를 분석 중입니다...",
			Success:           "분석이 완료되었습니다. 결과를 확인해보세요 🙌",
			MissingName:       "먼저 내 카카오톡 이름을 입력해주세요.",
			MissingFiles:      "최소 1개 이상의 카카오톡 내보내기 파일을 선택해주세요.",
			Failure:           "분석 중 오류가 발생했습니다: %s",
			MalformedResponse: "서버 응답을 해석할 수 없습니다",
			Copied:            "리포트를 클립보드에 복사했습니다.",
			CopyFailed:        "복사하지 못했습니다: %s",
		},
		Form: FormText{
			NamePrompt:  "이름",
			FilesPrompt: "파일",
			NoFiles:     "선택된 파일 없음",
			OneFile:     "선택된 파일 1개: %s",
			ManyFiles:   "선택된 파일 %d개: %s 외 %d개",
			NotFound:    "일치하는 파일이 없습니다: %s",
			FilesHint:   "경로 또는 glob 입력 후 enter",
			Hint:        "카카오톡 이름을 입력하고 내보내기 파일을 추가한 뒤 ctrl+s 를 눌러 분석하세요.",
		},
	}
}

// LocaleByTag returns the built-in catalog for tag ("en" or "ko").
func LocaleByTag(tag string) (Locale, error) {
	switch strings.ToLower(tag) {
	case "", "en":
		return English(), nil
	case "ko":
		return Korean(), nil
	default:
		return Locale{}, fmt.Errorf("%w: %q", ErrUnknownLocale, tag)
	}
}

// Clone returns a copy of l that shares no maps with it.
func (l Locale) Clone() Locale {
	l.TimeBuckets = maps.Clone(l.TimeBuckets)
	l.ConfidenceLevels = maps.Clone(l.ConfidenceLevels)
	l.AxisNames = maps.Clone(l.AxisNames)
	l.PanelTitles = maps.Clone(l.PanelTitles)
	return l
}

// TimeBucket resolves a most-active-period code. Unknown or absent codes
// resolve to the no-dominant-period sentence.
func (l Locale) TimeBucket(raw *string) string {
	if raw != nil {
		if s, ok := l.TimeBuckets[*raw]; ok {
			return s
		}
	}
	return l.NoDominantPeriod
}

// ConfidenceLevel resolves a confidence tier code. Unknown codes are returned
// verbatim.
func (l Locale) ConfidenceLevel(raw string) string {
	if s, ok := l.ConfidenceLevels[raw]; ok {
		return s
	}
	return raw
}

// AxisName returns the display name of a pole, or the pole code itself.
func (l Locale) AxisName(a Axis) string {
	if s, ok := l.AxisNames[a]; ok && s != "" {
		return s
	}
	return string(a)
}

// PanelTitle returns the display title of a panel, or its identifier.
func (l Locale) PanelTitle(p Panel) string {
	if s, ok := l.PanelTitles[p]; ok && s != "" {
		return s
	}
	return string(p)
}

// Number formats v for display. Integral values get digit grouping.
func (l Locale) Number(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		tag, err := language.Parse(l.Tag)
		if err != nil {
			tag = language.English
		}
		return message.NewPrinter(tag).Sprintf("%d", int64(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FileSummary describes the selected files.
func (l Locale) FileSummary(files []File) string {
	switch len(files) {
	case 0:
		return l.Form.NoFiles
	case 1:
		return fmt.Sprintf(l.Form.OneFile, files[0].Name())
	default:
		return fmt.Sprintf(l.Form.ManyFiles, len(files), files[0].Name(), len(files)-1)
	}
}

// Ordered fallbacks. Each returns the value when present and the fallback
// otherwise; ordered alias lookups across JSON keys happen once, at decoding.

// StringOr returns *v, or fallback when v is nil.
func StringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

// NonEmptyOr returns *v, or fallback when v is nil or blank.
func NonEmptyOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return *v
}

// NumberOr returns *v, or fallback when v is nil.
func NumberOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// StringsOr returns v, or fallback when v is empty.
func StringsOr(v []string, fallback []string) []string {
	if len(v) == 0 {
		return fallback
	}
	return v
}
