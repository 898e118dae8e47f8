package models

// PointType is the polarity of a scored event.
type PointType string

const (
	PointPositive PointType = "positive"
	PointNegative PointType = "negative"
)

// Valid reports whether t is positive or negative.
func (t PointType) Valid() bool {
	return t == PointPositive || t == PointNegative
}

// Category codes as stored on points. Two codes keep their historical mixed
// case; existing rows depend on them. OTHER exists in both sets.
const (
	CategoryChatActivity     = "CHAT_ACTIVITY"
	CategoryEventAttendance  = "EVENT_ATTENDANCE"
	CategoryEventDesign      = "EVENT_DESIGN"
	CategoryEventIdea        = "EVENT_IDEA"
	CategoryDailyTop         = "Daily_top"
	CategoryWeakInteraction  = "WEAK_INTERACTION"
	CategoryMissedMeeting    = "MISSED_MEETING"
	CategoryDesignShortfall  = "DESIGN_SHORTCOMING"
	CategoryInappropriate    = "INAPPROPRIATE_BEHAVIOR"
	CategoryUnexcusedAbsence = "Absence_without_excuse"
	CategoryOther            = "OTHER"
)

// PositiveCategories maps each positive category code to its display label.
var PositiveCategories = map[string]string{
	CategoryChatActivity:    "فعالية في الشات العام",
	CategoryEventAttendance: "حضور فعالية",
	CategoryEventDesign:     "تصميم فعالية",
	CategoryEventIdea:       "فكرة فعالية",
	CategoryDailyTop:        "توب يومي",
	CategoryOther:           "أخرى",
}

// NegativeCategories maps each negative category code to its display label.
var NegativeCategories = map[string]string{
	CategoryWeakInteraction:  "تفاعل ضعيف",
	CategoryMissedMeeting:    "عدم حضور اجتماع",
	CategoryDesignShortfall:  "تقصير في التصميم",
	CategoryInappropriate:    "سلوك غير لائق",
	CategoryUnexcusedAbsence: "غياب بدون عذر",
	CategoryOther:            "أخرى",
}

// CategoriesFor returns the category set that matches the point type, nil for an unknown type.
func CategoriesFor(t PointType) map[string]string {
	switch t {
	case PointPositive:
		return PositiveCategories
	case PointNegative:
		return NegativeCategories
	}
	return nil
}

// ValidCategory reports whether category belongs to the set for t.
func ValidCategory(t PointType, category string) bool {
	_, ok := CategoriesFor(t)[category]
	return ok
}
