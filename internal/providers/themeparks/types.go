package themeparks

import (
	"bytes"
	"encoding/json"
)

type scheduleResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Timezone string          `json:"timezone"`
	Schedule []scheduleEntry `json:"schedule"`
}

type scheduleEntry struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

type liveResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	LiveData []json.RawMessage `json:"liveData"`
}

// liveEntry fields tolerate off-type values so one odd entity cannot fail the whole payload.
type liveEntry struct {
	ID          looseString     `json:"id"`
	Name        looseString     `json:"name"`
	EntityType  looseString     `json:"entityType"`
	Status      looseString     `json:"status"`
	LastUpdated looseString     `json:"lastUpdated,omitempty"`
	Queue       json.RawMessage `json:"queue,omitempty"`
}

// Only the standby queue is tracked; return-time and paid queues are ignored.
type liveQueue struct {
	Standby json.RawMessage `json:"STANDBY,omitempty"`
}

type queueStatus struct {
	WaitTime json.RawMessage `json:"waitTime"`
}

// looseString accepts any JSON value. Strings are unquoted, null is empty and
// anything else keeps its literal text.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	*s = looseString(trimmed)
	return nil
}
