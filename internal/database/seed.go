package database

import (
	"fmt"

	"github.com/ascendapp/ascend-api/internal/models"
	"gorm.io/gorm"
)

// baseNeed describes one catalog entry installed by SeedQuestions.
type baseNeed struct {
	Text      string
	Category  string
	NeedKey   string
	NeedLabel string
	Order     int
	Volume    string
	Quality   string
}

// defaultQualityScale and defaultVolumeScale are the generic 7-option scales
// used until an admin installs need-specific wording (index 0 = worst,
// 6 = best).
var defaultQualityScale = []string{
	"1 = Extremely poor",
	"2 = Very poor",
	"3 = Poor",
	"4 = Below average",
	"5 = Average",
	"6 = Good",
	"7 = Excellent",
}

var defaultVolumeScale = []string{
	"1 = Almost never",
	"2 = Rarely",
	"3 = Occasionally",
	"4 = Sometimes",
	"5 = Regularly",
	"6 = Often",
	"7 = Very often",
}

var baseNeeds = []baseNeed{
	{
		Text:      "I get 7-8 hours of quality, restorative sleep most nights",
		Category:  models.CategorySurvival,
		NeedKey:   "sleep",
		NeedLabel: "Sleep",
		Order:     1,
		Volume:    "How many hours of sleep do you typically get each night?",
		Quality:   "How would you rate the quality of your sleep?",
	},
	{
		Text:      "I eat nutritious, whole foods that fuel my body well",
		Category:  models.CategorySurvival,
		NeedKey:   "nutrition",
		NeedLabel: "Nutrition",
		Order:     2,
		Volume:    "How often do you eat balanced, nutritious meals each week?",
		Quality:   "How satisfied are you with the quality of the food you eat?",
	},
	{
		Text:      "I exercise regularly (3+ times/week) and feel physically vital",
		Category:  models.CategorySurvival,
		NeedKey:   "exercise",
		NeedLabel: "Exercise",
		Order:     3,
		Volume:    "How many days per week do you exercise?",
		Quality:   "How satisfied are you with the quality/effectiveness of your exercise?",
	},
	{
		Text:      "I have sufficient physical energy to do what matters to me",
		Category:  models.CategorySurvival,
		NeedKey:   "energy",
		NeedLabel: "Energy",
		Order:     4,
		Volume:    "How often do you feel low on energy in a typical week?",
		Quality:   "How would you rate the quality of your daily energy levels?",
	},
	{
		Text:      "I take care of my body and my overall health is good",
		Category:  models.CategorySurvival,
		NeedKey:   "health",
		NeedLabel: "Health",
		Order:     5,
		Volume:    "How consistently do you follow health routines (sleep, food, movement)?",
		Quality:   "How would you rate the quality of your overall health habits?",
	},
	{
		Text:      "I have sufficient money to meet my basic needs without constant stress",
		Category:  models.CategorySurvival,
		NeedKey:   "basic-finances",
		NeedLabel: "Basic Finances",
		Order:     6,
		Volume:    "How often do you meet basic expenses without strain?",
		Quality:   "How satisfied are you with the quality of your basic financial stability?",
	},
	{
		Text:      "My body feels healthy, strong, and capable",
		Category:  models.CategorySurvival,
		NeedKey:   "physical-strength",
		NeedLabel: "Physical Strength",
		Order:     7,
		Volume:    "How often do you feel physically capable doing daily tasks?",
		Quality:   "How satisfied are you with the quality of your physical strength?",
	},
	{
		Text:      "I feel physically safe in my home and daily environment",
		Category:  models.CategorySafety,
		NeedKey:   "physical-safety",
		NeedLabel: "Physical Safety",
		Order:     8,
		Volume:    "How often do you encounter situations that feel physically unsafe?",
		Quality:   "How secure do you feel about the quality of your physical safety?",
	},
	{
		Text:      "I feel secure about my financial situation and future",
		Category:  models.CategorySafety,
		NeedKey:   "financial-security",
		NeedLabel: "Financial Security",
		Order:     9,
		Volume:    "How consistently do you meet financial obligations without worry?",
		Quality:   "How satisfied are you with the quality of your financial security?",
	},
	{
		Text:      "I have structure, order, and routine in my life that supports me",
		Category:  models.CategorySafety,
		NeedKey:   "structure-routine",
		NeedLabel: "Structure & Routine",
		Order:     10,
		Volume:    "How often do you follow a predictable daily/weekly routine?",
		Quality:   "How effective is the quality of your routines and structures?",
	},
	{
		Text:      "My life has sufficient stability (I'm not in constant chaos or crisis)",
		Category:  models.CategorySafety,
		NeedKey:   "stability",
		NeedLabel: "Stability",
		Order:     11,
		Volume:    "How frequently do major disruptions impact your life?",
		Quality:   "How would you rate the quality of stability in your life?",
	},
	{
		Text:      "I feel in control of my life circumstances and able to influence outcomes",
		Category:  models.CategorySafety,
		NeedKey:   "control-agency",
		NeedLabel: "Control & Agency",
		Order:     12,
		Volume:    "How often do you feel you can act to change your situation?",
		Quality:   "How satisfied are you with the quality of your personal agency?",
	},
	{
		Text:      "I have deep, meaningful connections with others who truly know me",
		Category:  models.CategorySocial,
		NeedKey:   "connection-depth",
		NeedLabel: "Deep Connection",
		Order:     13,
		Volume:    "How often do you engage in deep conversations each week?",
		Quality:   "How satisfied are you with the quality of your closest connections?",
	},
	{
		Text:      "I give and receive love, affection, and care in my relationships",
		Category:  models.CategorySocial,
		NeedKey:   "affection",
		NeedLabel: "Affection & Care",
		Order:     14,
		Volume:    "How frequently do you exchange affection with close others?",
		Quality:   "How satisfied are you with the quality of affection you give/receive?",
	},
	{
		Text:      "I feel like I belong to a community or group that matters to me",
		Category:  models.CategorySocial,
		NeedKey:   "belonging",
		NeedLabel: "Belonging",
		Order:     15,
		Volume:    "How often do you interact with your community/group?",
		Quality:   "How strong is the quality of your sense of belonging?",
	},
	{
		Text:      "I have at least one relationship of deep trust and intimacy",
		Category:  models.CategorySocial,
		NeedKey:   "trust-intimacy",
		NeedLabel: "Trust & Intimacy",
		Order:     16,
		Volume:    "How frequently do you share vulnerably with someone you trust?",
		Quality:   "How would you rate the quality of trust/intimacy in that relationship?",
	},
	{
		Text:      "I have friends/companions I enjoy spending time with regularly",
		Category:  models.CategorySocial,
		NeedKey:   "companionship",
		NeedLabel: "Companionship",
		Order:     17,
		Volume:    "How often do you spend enjoyable time with friends each week?",
		Quality:   "How satisfying is the quality of time with friends/companions?",
	},
	{
		Text:      "I respect myself, my choices, and my accomplishments",
		Category:  models.CategorySelf,
		NeedKey:   "self-respect",
		NeedLabel: "Self-Respect",
		Order:     18,
		Volume:    "How often do you acknowledge your own wins and good choices?",
		Quality:   "How would you rate the quality of your self-respect?",
	},
	{
		Text:      "I have a strong sense of my own dignity and inherent worth as a person",
		Category:  models.CategorySelf,
		NeedKey:   "self-worth",
		NeedLabel: "Self-Worth",
		Order:     19,
		Volume:    "How often do you feel grounded in your inherent worth?",
		Quality:   "How would you rate the quality of your sense of dignity/worth?",
	},
	{
		Text:      "I feel respected and valued by others (colleagues, family, friends)",
		Category:  models.CategorySelf,
		NeedKey:   "respect-from-others",
		NeedLabel: "Respect From Others",
		Order:     20,
		Volume:    "How frequently do others show you respect and appreciation?",
		Quality:   "How would you rate the quality of respect you receive?",
	},
	{
		Text:      "My voice and opinions matter; I'm listened to and taken seriously",
		Category:  models.CategorySelf,
		NeedKey:   "voice-agency",
		NeedLabel: "Voice & Agency",
		Order:     21,
		Volume:    "How often do you speak up and feel heard?",
		Quality:   "How would you rate the quality of being heard/taken seriously?",
	},
	{
		Text:      "I'm actively learning, growing, and expanding my understanding",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "learning-growth",
		NeedLabel: "Learning & Growth",
		Order:     22,
		Volume:    "How many hours per week do you invest in learning/growth?",
		Quality:   "How satisfied are you with the quality of your learning efforts?",
	},
	{
		Text:      "I seek truth and understanding in areas that matter to me",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "truth",
		NeedLabel: "Truth & Understanding",
		Order:     23,
		Volume:    "How often do you explore topics to deepen your understanding?",
		Quality:   "How satisfied are you with the depth/quality of that exploration?",
	},
	{
		Text:      "I'm curious about life and enjoy exploring new ideas",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "curiosity",
		NeedLabel: "Curiosity",
		Order:     24,
		Volume:    "How often do you pursue new ideas or experiences each week?",
		Quality:   "How would you rate the quality of your curiosity and exploration?",
	},
	{
		Text:      "I notice, appreciate, and create beauty in my life",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "beauty",
		NeedLabel: "Beauty",
		Order:     25,
		Volume:    "How often do you engage in activities that involve beauty or aesthetics?",
		Quality:   "How satisfied are you with the quality of beauty in your life?",
	},
	{
		Text:      "I express myself creatively in some form",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "creativity",
		NeedLabel: "Creativity",
		Order:     26,
		Volume:    "How often do you engage in creative expression each week?",
		Quality:   "How satisfied are you with the quality of your creative output?",
	},
	{
		Text:      "I express my authentic self rather than a false persona",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "authenticity",
		NeedLabel: "Authenticity",
		Order:     27,
		Volume:    "How often do you feel free to show your authentic self?",
		Quality:   "How would you rate the quality of your authenticity day-to-day?",
	},
	{
		Text:      "I'm expressing my best self and highest qualities regularly",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "best-self",
		NeedLabel: "Best Self",
		Order:     28,
		Volume:    "How often do you show up as your best self each week?",
		Quality:   "How satisfied are you with the quality of expressing your best self?",
	},
	{
		Text:      "I'm using and developing my unique talents and gifts",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "talents",
		NeedLabel: "Talents & Gifts",
		Order:     29,
		Volume:    "How often do you intentionally develop your talents?",
		Quality:   "How satisfied are you with the quality of using your talents?",
	},
	{
		Text:      "I'm actively choosing my own path rather than just following others",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "autonomy",
		NeedLabel: "Autonomy",
		Order:     30,
		Volume:    "How often do you make independent choices about your direction?",
		Quality:   "How satisfied are you with the quality of your autonomy?",
	},
	{
		Text:      "I have a clear sense of purpose that guides my decisions",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "purpose",
		NeedLabel: "Purpose",
		Order:     31,
		Volume:    "How often do you revisit or act on your sense of purpose?",
		Quality:   "How clear and strong is the quality of your purpose?",
	},
	{
		Text:      "I'm living aligned with my highest values and principles",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "values-alignment",
		NeedLabel: "Values Alignment",
		Order:     32,
		Volume:    "How often do you check decisions against your values?",
		Quality:   "How satisfied are you with the quality of your values alignment?",
	},
	{
		Text:      "I'm making a meaningful contribution to something beyond myself",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "contribution",
		NeedLabel: "Contribution",
		Order:     33,
		Volume:    "How often do you contribute to causes beyond yourself?",
		Quality:   "How would you rate the quality/impact of your contributions?",
	},
	{
		Text:      "My life and work have positive impact on others or the world",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "impact",
		NeedLabel: "Impact",
		Order:     34,
		Volume:    "How often do you see evidence of positive impact from your work/life?",
		Quality:   "How satisfied are you with the quality of your impact?",
	},
	{
		Text:      "I regularly serve or help others in ways that matter",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "service",
		NeedLabel: "Service",
		Order:     35,
		Volume:    "How often do you serve or help others each week?",
		Quality:   "How would you rate the quality/meaningfulness of that service?",
	},
	{
		Text:      "I care deeply about and extend myself for others' wellbeing",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "compassion",
		NeedLabel: "Compassion",
		Order:     36,
		Volume:    "How often do you take action for others' wellbeing?",
		Quality:   "How satisfied are you with the quality of your compassion in action?",
	},
	{
		Text:      "I'm generous with my time, attention, resources, and love",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "generosity",
		NeedLabel: "Generosity",
		Order:     37,
		Volume:    "How often do you give time/attention/resources to others?",
		Quality:   "How would you rate the quality of your generosity?",
	},
	{
		Text:      "I regularly experience moments of flow, peak performance, or transcendence",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "flow",
		NeedLabel: "Flow & Peak",
		Order:     38,
		Volume:    "How often do you enter flow or peak performance states?",
		Quality:   "How would you rate the quality of those flow/peak experiences?",
	},
	{
		Text:      "My life feels deeply meaningful and purposeful",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "meaning",
		NeedLabel: "Meaning",
		Order:     39,
		Volume:    "How often do you feel a deep sense of meaning in your week?",
		Quality:   "How strong is the quality of meaning in your life?",
	},
	{
		Text:      "I'm becoming the person I'm capable of being; I'm actualizing my potential",
		Category:  models.CategoryMetaNeeds,
		NeedKey:   "self-actualization",
		NeedLabel: "Self-Actualization",
		Order:     40,
		Volume:    "How often do you take steps toward your potential each week?",
		Quality:   "How satisfied are you with the quality of your self-actualization?",
	},}

// SeedQuestions installs the base need catalog when the questions table is
// empty. Needs use the default rating scales; admins replace them with
// need-specific wording afterwards.
func SeedQuestions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	questions := make([]models.Question, 0, len(baseNeeds))
	orderInCategory := map[string]int{}
	for _, n := range baseNeeds {
		orderInCategory[n.Category]++
		questions = append(questions, models.Question{
			QuestionText:  n.Text,
			Category:      n.Category,
			NeedKey:       n.NeedKey,
			NeedLabel:     n.NeedLabel,
			NeedOrder:     orderInCategory[n.Category],
			SectionOrder:  n.Order,
			AnswerOptions: models.DefaultAnswerOptions,
			QualityPrompt: n.Quality,
			QualityScale:  defaultQualityScale,
			VolumePrompt:  n.Volume,
			VolumeScale:   defaultVolumeScale,
			IsActive:      true,
		})
	}

	if err := db.Create(&questions).Error; err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	return nil
}
