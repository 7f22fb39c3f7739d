package models

// AnalyticsRecord is written once per handled intent and never read back.
type AnalyticsRecord struct {
	ID          string `json:"id" bson:"_id"`
	Intent      string `json:"intent" bson:"intent"`
	Person      string `json:"person" bson:"person"`
	Date        string `json:"date,omitempty" bson:"date,omitempty"`
	Time        string `json:"time,omitempty" bson:"time,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty" bson:"phone_number,omitempty"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	Message     string `json:"message,omitempty" bson:"message,omitempty"`
	Timestamp   string `json:"timestamp" bson:"timestamp"`
}
