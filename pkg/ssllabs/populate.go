package ssllabs

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errEmptyResponse = errors.New("empty response body")

// ResponsePopulator decodes raw API replies into result models.
type ResponsePopulator struct{}

// PopulateInfo fills target from an info reply.
func (ResponsePopulator) PopulateInfo(raw *RawResponse, target *Info) error {
	return populate(raw, target)
}

// PopulateAnalyze fills target from an analyze reply. An assessment that ended
// in the ERROR state is recorded as an error on the result.
func (ResponsePopulator) PopulateAnalyze(raw *RawResponse, target *Analyze) error {
	if err := populate(raw, target); err != nil {
		return err
	}
	if target.Status == StatusErrored {
		msg := target.StatusMessage
		if msg == "" {
			msg = "assessment failed"
		}
		target.Errors = append(target.Errors, Error{Field: "status", Message: msg})
	}
	return nil
}

// PopulateEndpoint fills target from a getEndpointData reply.
func (ResponsePopulator) PopulateEndpoint(raw *RawResponse, target *EndpointData) error {
	return populate(raw, target)
}

// PopulateStatusCodes fills target from a getStatusCodes reply.
func (ResponsePopulator) PopulateStatusCodes(raw *RawResponse, target *StatusCodes) error {
	return populate(raw, target)
}

// populate decodes into a fresh value and only then overwrites target, so a
// malformed body leaves target untouched. Errors carried in the payload are
// appended after the ones already on target; the error flag is left alone.
func populate[M any, PM interface {
	*M
	ResultModel
}](raw *RawResponse, target PM) error {
	if raw == nil || len(raw.Body) == 0 {
		return errEmptyResponse
	}

	var fresh M
	if err := json.Unmarshal(raw.Body, &fresh); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	prior := *target.Base()
	remote := PM(&fresh).Base().Errors

	*target = fresh
	res := target.Base()
	res.HasErrorOccurred = prior.HasErrorOccurred
	res.Errors = append(prior.Errors, remote...)
	return nil
}
