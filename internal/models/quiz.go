package models

type VirtueProfile string

const (
	ProfileWisdom        VirtueProfile = "Sabedoria"
	ProfileAction        VirtueProfile = "Ação"
	ProfileContemplation VirtueProfile = "Contemplação"
	ProfileFaith         VirtueProfile = "Fé"
)

func AllVirtueProfiles() []VirtueProfile {
	return []VirtueProfile{ProfileWisdom, ProfileAction, ProfileContemplation, ProfileFaith}
}

func IsValidVirtueProfile(value VirtueProfile) bool {
	for _, profile := range AllVirtueProfiles() {
		if profile == value {
			return true
		}
	}
	return false
}

type QuizResult struct {
	Profile    VirtueProfile `json:"profile"`
	Diagnostic string        `json:"diagnostic"`
	Verse      string        `json:"verse"`
	Reference  string        `json:"reference"`
}
