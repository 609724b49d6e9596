package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Job(t *testing.T) {
	valid := []byte(`{
		"id": "4012345678",
		"title": "Engineer",
		"company": "Acme",
		"location": "Remote",
		"description": "desc",
		"url": "https://www.linkedin.com/jobs/view/4012345678",
		"source": "linkedin",
		"scraped_at": "2026-01-02T15:04:05Z"
	}`)
	assert.NoError(t, Validate(JobSchema, valid))
}

func TestValidate_JobMissingID(t *testing.T) {
	invalid := []byte(`{"title": "Engineer"}`)
	err := Validate(JobSchema, invalid)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, JobSchema, ve.Schema)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidate_StatusStates(t *testing.T) {
	tests := []struct {
		name  string
		state string
		valid bool
	}{
		{name: "starting", state: "starting", valid: true},
		{name: "running", state: "running", valid: true},
		{name: "complete", state: "complete", valid: true},
		{name: "error", state: "error", valid: true},
		{name: "unknown state", state: "paused", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := []byte(`{"id": "t1", "state": "` + tt.state + `", "updated_at": "2026-01-02T15:04:05Z"}`)
			err := Validate(StatusSchema, doc)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Profile(t *testing.T) {
	valid := []byte(`{"name": "Jane", "email": "j@example.com", "phone": "", "background": ""}`)
	assert.NoError(t, Validate(ProfileSchema, valid))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", []byte(`{}`))
	assert.Error(t, err)
}
