package showdown

// Validator adapts ParseTeam to the pass/fail oracle the scraper consumes.
type Validator struct{}

// Validate returns the parse error for teamText, if any.
func (Validator) Validate(teamText string) error {
	_, err := ParseTeam(teamText)
	return err
}
