// Package speech wraps the voice services: speech synthesis for assistant
// replies and speech recognition for voice input. Both are mocked behind
// small interfaces since the host platform owns the real audio work.
package speech

// VoiceStyle identifies a synthesis voice from the fixed supported set.
type VoiceStyle string

const (
	VoiceProfessionalMale   VoiceStyle = "professional-male"
	VoiceProfessionalFemale VoiceStyle = "professional-female"
	VoiceCasualMale         VoiceStyle = "casual-male"
	VoiceCasualFemale       VoiceStyle = "casual-female"
	VoicePodcastHost        VoiceStyle = "podcast-host"
	VoiceRobotic            VoiceStyle = "robotic"
)

// VoiceStyles lists every supported style in display order.
func VoiceStyles() []VoiceStyle {
	return []VoiceStyle{
		VoiceProfessionalMale,
		VoiceProfessionalFemale,
		VoiceCasualMale,
		VoiceCasualFemale,
		VoicePodcastHost,
		VoiceRobotic,
	}
}

// IsValidStyle reports whether s is one of the supported voice styles.
func IsValidStyle(s string) bool {
	for _, style := range VoiceStyles() {
		if string(style) == s {
			return true
		}
	}
	return false
}

// Label returns a human-readable name for the style.
func (v VoiceStyle) Label() string {
	switch v {
	case VoiceProfessionalMale:
		return "Professional (Male)"
	case VoiceProfessionalFemale:
		return "Professional (Female)"
	case VoiceCasualMale:
		return "Casual (Male)"
	case VoiceCasualFemale:
		return "Casual (Female)"
	case VoicePodcastHost:
		return "Podcast Host"
	case VoiceRobotic:
		return "Robotic"
	default:
		return string(v)
	}
}
