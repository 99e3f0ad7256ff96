package database

import (
	"github.com/ndthang/edubot/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Seed loads the built-in tests and the majors catalog on first start.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Test{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info().Msg("Seeding tests and majors...")

	if err := db.Create(seedMajors()).Error; err != nil {
		return err
	}
	if err := db.Create(seedPersonalityTest()).Error; err != nil {
		return err
	}
	if err := db.Create(seedCareerTest()).Error; err != nil {
		return err
	}

	log.Info().Msg("Seed data loaded")
	return nil
}

func opts(pairs ...[2]string) []model.Option {
	options := make([]model.Option, 0, len(pairs))
	for i, p := range pairs {
		options = append(options, model.Option{Text: p[0], Trait: p[1], OrderInQuestion: i})
	}
	return options
}

func seedPersonalityTest() *model.Test {
	return &model.Test{
		Name:        "MBTI Personality Test",
		Type:        model.TestTypePersonality,
		Description: "Discover your personality type across the four MBTI axes.",
		Questions: []model.Question{
			{OrderInTest: 0, Prompt: "At a party you would rather", Options: opts(
				[2]string{"Meet as many new people as possible", "E"},
				[2]string{"Talk at length with a few people you know", "I"})},
			{OrderInTest: 1, Prompt: "After a long week you recharge by", Options: opts(
				[2]string{"Going out with friends", "E"},
				[2]string{"Spending a quiet evening alone", "I"})},
			{OrderInTest: 2, Prompt: "When learning something new you prefer", Options: opts(
				[2]string{"Concrete facts and examples", "S"},
				[2]string{"Concepts and the big picture", "N"})},
			{OrderInTest: 3, Prompt: "You trust more", Options: opts(
				[2]string{"Your direct experience", "S"},
				[2]string{"Your hunches", "N"})},
			{OrderInTest: 4, Prompt: "When a friend has a problem you first", Options: opts(
				[2]string{"Suggest a practical solution", "T"},
				[2]string{"Listen and empathize", "F"})},
			{OrderInTest: 5, Prompt: "Hard decisions should be made with", Options: opts(
				[2]string{"The head", "T"},
				[2]string{"The heart", "F"})},
			{OrderInTest: 6, Prompt: "Your ideal trip is", Options: opts(
				[2]string{"Planned day by day in advance", "J"},
				[2]string{"Decided as you go", "P"})},
			{OrderInTest: 7, Prompt: "Deadlines are", Options: opts(
				[2]string{"Commitments to finish early", "J"},
				[2]string{"Suggestions that spark last-minute focus", "P"})},
		},
	}
}

func seedCareerTest() *model.Test {
	return &model.Test{
		Name:        "Holland Career Interest Test",
		Type:        model.TestTypeCareer,
		Description: "Find the career group that matches your interests (RIASEC).",
		Questions: []model.Question{
			{OrderInTest: 0, Prompt: "Which activity sounds most enjoyable?", Options: opts(
				[2]string{"Repairing a machine", "Realistic"},
				[2]string{"Running a science experiment", "Investigative"},
				[2]string{"Designing a poster", "Artistic"})},
			{OrderInTest: 1, Prompt: "On a group project you naturally", Options: opts(
				[2]string{"Coach teammates who are stuck", "Social"},
				[2]string{"Pitch the idea and negotiate resources", "Enterprising"},
				[2]string{"Keep the schedule and the budget sheet", "Conventional"})},
			{OrderInTest: 2, Prompt: "A satisfying afternoon would be", Options: opts(
				[2]string{"Building furniture", "Realistic"},
				[2]string{"Solving a tricky puzzle", "Investigative"},
				[2]string{"Writing a short story", "Artistic"})},
			{OrderInTest: 3, Prompt: "You would rather be praised for", Options: opts(
				[2]string{"Helping someone grow", "Social"},
				[2]string{"Closing a difficult deal", "Enterprising"},
				[2]string{"Flawless record keeping", "Conventional"})},
			{OrderInTest: 4, Prompt: "Pick a school subject", Options: opts(
				[2]string{"Workshop practice", "Realistic"},
				[2]string{"Biology research", "Investigative"},
				[2]string{"Music", "Artistic"})},
			{OrderInTest: 5, Prompt: "Pick a part-time job", Options: opts(
				[2]string{"Tutoring younger students", "Social"},
				[2]string{"Selling at a startup booth", "Enterprising"},
				[2]string{"Organizing a library archive", "Conventional"})},
		},
	}
}

func seedMajors() []model.Major {
	return []model.Major{
		{Code: "7480201", Name: "Computer Science", Department: "Information Technology", Traits: "Investigative,Conventional", Description: "Algorithms, systems and software engineering."},
		{Code: "7480102", Name: "Computer Networks", Department: "Information Technology", Traits: "Realistic,Investigative", Description: "Network design, administration and security."},
		{Code: "7520201", Name: "Electrical Engineering", Department: "Engineering", Traits: "Realistic", Description: "Power systems, electronics and control."},
		{Code: "7340101", Name: "Business Administration", Department: "Business", Traits: "Enterprising", Description: "Management, strategy and operations."},
		{Code: "7340301", Name: "Accounting", Department: "Business", Traits: "Conventional", Description: "Financial reporting and auditing."},
		{Code: "7140202", Name: "Primary Education", Department: "Education", Traits: "Social", Description: "Teaching and child development."},
		{Code: "7720101", Name: "General Medicine", Department: "Health Sciences", Traits: "Investigative,Social", Description: "Clinical medicine and patient care."},
		{Code: "7210403", Name: "Graphic Design", Department: "Arts", Traits: "Artistic", Description: "Visual communication and digital design."},
		{Code: "7310101", Name: "Economics", Department: "Business", Traits: "Investigative,Enterprising", Description: "Markets, policy and quantitative analysis."},
		{Code: "7760101", Name: "Social Work", Department: "Social Sciences", Traits: "Social", Description: "Community support and counseling."},
	}
}
