package dataset

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Dataset is one exported snapshot of the three collections the matching
// engine works on.
type Dataset struct {
	JobSeekers        *JobSeekers
	HiringAuthorities *HiringAuthorities
	Companies         *Companies
}

// envelope mirrors the export document. Collections arrive as generic maps
// because dumps carry graph bookkeeping fields (_id, _rev) next to the data.
type envelope struct {
	JobSeekers        []map[string]any `json:"jobSeekers"`
	HiringAuthorities []map[string]any `json:"hiringAuthorities"`
	Companies         []map[string]any `json:"companies"`
}

func (e *envelope) decode() (*Dataset, error) {
	var seekers []*JobSeeker
	if err := decodeRecords(e.JobSeekers, &seekers); err != nil {
		return nil, fmt.Errorf("decoding job seekers: %w", err)
	}

	var authorities []*HiringAuthority
	if err := decodeRecords(e.HiringAuthorities, &authorities); err != nil {
		return nil, fmt.Errorf("decoding hiring authorities: %w", err)
	}

	var companies []*Company
	if err := decodeRecords(e.Companies, &companies); err != nil {
		return nil, fmt.Errorf("decoding companies: %w", err)
	}

	return &Dataset{
		JobSeekers:        &JobSeekers{Items: seekers},
		HiringAuthorities: &HiringAuthorities{Items: authorities},
		Companies:         &Companies{Items: companies},
	}, nil
}

func decodeRecords(docs []map[string]any, result any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   result,
		TagName:  "json",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(docs)
}

// Prune drops records that fail validation and returns one error per dropped
// record. The dataset stays usable afterwards, holding only valid records.
func (d *Dataset) Prune() []error {
	var dropped []error

	for idx := 0; idx < d.JobSeekers.Len(); {
		seeker := d.JobSeekers.Items[idx]
		if err := seeker.Validate(); err != nil {
			dropped = append(dropped, fmt.Errorf("job seeker %q: %w", seeker.Key, err))
			d.JobSeekers.RemoveByIndex(idx)
			continue
		}
		idx++
	}

	for idx := 0; idx < d.HiringAuthorities.Len(); {
		authority := d.HiringAuthorities.Items[idx]
		if err := authority.Validate(); err != nil {
			dropped = append(dropped, fmt.Errorf("hiring authority %q: %w", authority.Key, err))
			d.HiringAuthorities.RemoveByIndex(idx)
			continue
		}
		idx++
	}

	for idx := 0; idx < d.Companies.Len(); {
		company := d.Companies.Items[idx]
		if err := company.Validate(); err != nil {
			dropped = append(dropped, fmt.Errorf("company %q: %w", company.Key, err))
			d.Companies.RemoveByIndex(idx)
			continue
		}
		idx++
	}

	return dropped
}
