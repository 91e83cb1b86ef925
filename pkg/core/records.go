package core

// ExamID identifies one scheduled exam sitting. The same ExamID correlates
// exactly one row in each of the Locations, Courses and Time relations.
type ExamID string

// Relation names as they appear in source files and the state database.
const (
	RelationLocations = "Locations"
	RelationCourses   = "Courses"
	RelationTime      = "Time"
)

// LocationRecord is a row of the Locations relation.
type LocationRecord struct {
	ID   ExamID `json:"id" yaml:"id"`
	Room string `json:"room" yaml:"room"`
}

// Key returns the record's ExamID.
func (r LocationRecord) Key() ExamID { return r.ID }

// CourseRecord is a row of the Courses relation. Instructors holds one or
// more instructor names joined by a delimiter; it is parsed per query.
type CourseRecord struct {
	ID          ExamID `json:"id" yaml:"id"`
	Course      string `json:"course" yaml:"course"`
	Section     string `json:"section" yaml:"section"`
	Instructors string `json:"instructors" yaml:"instructors"`
}

// Key returns the record's ExamID.
func (r CourseRecord) Key() ExamID { return r.ID }

// TimeRecord is a row of the Time relation. Values are kept exactly as
// loaded; no date or time parsing happens at ingestion.
type TimeRecord struct {
	ID       ExamID `json:"id" yaml:"id"`
	Date     string `json:"date" yaml:"date"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
	Duration string `json:"duration" yaml:"duration"`
}

// Key returns the record's ExamID.
func (r TimeRecord) Key() ExamID { return r.ID }

// Relations bundles the three relations as delivered by ingestion.
type Relations struct {
	Locations []LocationRecord
	Courses   []CourseRecord
	Times     []TimeRecord
}
