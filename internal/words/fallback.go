package words

import (
	"math/rand"
	"strings"

	"github.com/hyerin/tinywords/internal/models"
)

// fallbackPool is served when generation fails so the day plan can
// always be built.
var fallbackPool = []GeneratedWord{
	{
		ItemType: models.ItemTypeVocab, Lemma: "itinerary",
		Meaning: "여행 일정표", PartOfSpeech: "noun",
		Example:            "I shared my itinerary with my family.",
		ExampleTranslation: "나는 가족에게 내 여행 일정을 공유했다.",
	},
	{
		ItemType: models.ItemTypePhrasalVerb, Lemma: "check in",
		Meaning: "체크인하다", PartOfSpeech: "verb",
		Example:            "We need to check in two hours early.",
		ExampleTranslation: "우리는 두 시간 일찍 체크인해야 한다.",
	},
	{
		ItemType: models.ItemTypeCollocation, Lemma: "make a reservation",
		Meaning: "예약하다", PartOfSpeech: "verb phrase",
		Example:            "Let's make a reservation for dinner.",
		ExampleTranslation: "저녁 식사 예약을 하자.",
	},
	{
		ItemType: models.ItemTypeVocab, Lemma: "commute",
		Meaning: "통근하다", PartOfSpeech: "verb",
		Example:            "I commute to work by subway every day.",
		ExampleTranslation: "나는 매일 지하철로 통근한다.",
	},
	{
		ItemType: models.ItemTypeIdiom, Lemma: "break the ice",
		Meaning: "분위기를 풀다", PartOfSpeech: "idiom",
		Example:            "She told a joke to break the ice.",
		ExampleTranslation: "그녀는 분위기를 풀기 위해 농담을 했다.",
	},
	{
		ItemType: models.ItemTypeVocab, Lemma: "accommodate",
		Meaning: "수용하다, 편의를 제공하다", PartOfSpeech: "verb",
		Example:            "The hotel can accommodate up to 200 guests.",
		ExampleTranslation: "그 호텔은 최대 200명의 손님을 수용할 수 있다.",
	},
	{
		ItemType: models.ItemTypePreposition, Lemma: "in terms of",
		Meaning: "~의 관점에서", PartOfSpeech: "preposition",
		Example:            "In terms of cost, this option is the best.",
		ExampleTranslation: "비용 관점에서 이 옵션이 최고다.",
	},
	{
		ItemType: models.ItemTypeVocab, Lemma: "deadline",
		Meaning: "마감 기한", PartOfSpeech: "noun",
		Example:            "The deadline for the report is next Friday.",
		ExampleTranslation: "보고서 마감 기한은 다음 주 금요일이다.",
	},
	{
		ItemType: models.ItemTypePhrasalVerb, Lemma: "look forward to",
		Meaning: "~을 기대하다", PartOfSpeech: "verb",
		Example:            "I look forward to meeting you.",
		ExampleTranslation: "만나 뵙기를 기대합니다.",
	},
	{
		ItemType: models.ItemTypeCollocation, Lemma: "take notes",
		Meaning: "메모하다, 필기하다", PartOfSpeech: "verb phrase",
		Example:            "Please take notes during the meeting.",
		ExampleTranslation: "회의 중에 메모해 주세요.",
	},
}

// PickFallback selects count random pool words, skipping avoid-list
// lemmas. Returns fewer than count only when the pool runs out.
func PickFallback(count int, avoidWords []string) []GeneratedWord {
	avoid := make(map[string]bool, len(avoidWords))
	for _, w := range avoidWords {
		avoid[strings.ToLower(w)] = true
	}

	var available []GeneratedWord
	for _, w := range fallbackPool {
		if !avoid[strings.ToLower(w.Lemma)] {
			available = append(available, w)
		}
	}

	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if count > len(available) {
		count = len(available)
	}
	return available[:count]
}
