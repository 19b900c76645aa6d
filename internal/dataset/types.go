package dataset

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Authority levels as stored in the exported documents.
const (
	LevelCSuite    = "C-Suite"
	LevelExecutive = "Executive"
	LevelDirector  = "Director"
	LevelManager   = "Manager"
)

// Hiring power values as stored in the exported documents.
const (
	PowerUltimate = "Ultimate"
	PowerHigh     = "High"
	PowerMedium   = "Medium"
)

// companyHandlePrefix is how authority documents reference their company.
const companyHandlePrefix = "companies/"

type JobSeeker struct {
	Key         string         `json:"_key" validate:"required"`
	Name        string         `json:"name"`
	Skills      []string       `json:"skills"`
	SkillLevels map[string]int `json:"skillLevels" validate:"omitempty,dive,gte=1,lte=10"`
	Experience  int            `json:"experience" validate:"gte=0"`
}

type HiringAuthority struct {
	Key                 string   `json:"_key" validate:"required"`
	Name                string   `json:"name"`
	Level               string   `json:"level"`
	SkillsLookingFor    []string `json:"skillsLookingFor"`
	PreferredExperience string   `json:"preferredExperience"`
	HiringPower         string   `json:"hiringPower"`
	DecisionMaker       bool     `json:"decisionMaker"`
	CompanyID           string   `json:"companyId" validate:"required"`
}

type Company struct {
	Key           string `json:"_key" validate:"required"`
	Name          string `json:"name"`
	EmployeeCount int    `json:"employeeCount" validate:"gte=0"`
}

func (s *JobSeeker) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

func (a *HiringAuthority) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

func (c *Company) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Handle returns the document handle other collections use to reference
// this company.
func (c *Company) Handle() string {
	return companyHandlePrefix + c.Key
}

type JobSeekers struct {
	Items []*JobSeeker
}

func (s *JobSeekers) Len() int {
	return len(s.Items)
}

func (s *JobSeekers) FindByKey(key string) *JobSeeker {
	for _, seeker := range s.Items {
		if seeker.Key == key {
			return seeker
		}
	}
	return nil
}

func (s *JobSeekers) Keys() []string {
	keys := make([]string, 0, len(s.Items))
	for _, seeker := range s.Items {
		keys = append(keys, seeker.Key)
	}
	return keys
}

// RemoveByIndex removes a job seeker from the list by index. Do not preserve order.
func (s *JobSeekers) RemoveByIndex(idx int) {
	s.Items[idx] = s.Items[len(s.Items)-1]
	s.Items = s.Items[:len(s.Items)-1]
}

type HiringAuthorities struct {
	Items []*HiringAuthority
}

func (a *HiringAuthorities) Len() int {
	return len(a.Items)
}

func (a *HiringAuthorities) FindByKey(key string) *HiringAuthority {
	for _, authority := range a.Items {
		if authority.Key == key {
			return authority
		}
	}
	return nil
}

func (a *HiringAuthorities) Keys() []string {
	keys := make([]string, 0, len(a.Items))
	for _, authority := range a.Items {
		keys = append(keys, authority.Key)
	}
	return keys
}

// RemoveByIndex removes an authority from the list by index. Do not preserve order.
func (a *HiringAuthorities) RemoveByIndex(idx int) {
	a.Items[idx] = a.Items[len(a.Items)-1]
	a.Items = a.Items[:len(a.Items)-1]
}

type Companies struct {
	Items []*Company
}

func (c *Companies) Len() int {
	return len(c.Items)
}

func (c *Companies) FindByKey(key string) *Company {
	for _, company := range c.Items {
		if company.Key == key {
			return company
		}
	}
	return nil
}

// Resolve returns the company referenced by an authority's companyId handle,
// or nil when the handle does not point at a known company.
func (c *Companies) Resolve(companyID string) *Company {
	if c == nil {
		return nil
	}

	key := strings.TrimPrefix(companyID, companyHandlePrefix)
	if key == companyID {
		return nil
	}
	return c.FindByKey(key)
}

// RemoveByIndex removes a company from the list by index. Do not preserve order.
func (c *Companies) RemoveByIndex(idx int) {
	c.Items[idx] = c.Items[len(c.Items)-1]
	c.Items = c.Items[:len(c.Items)-1]
}
