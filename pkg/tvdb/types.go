// Package tvdb provides a client for the TVDB API v4.
package tvdb

// SearchResult is one candidate record returned by the search endpoint.
// Translations maps a three-letter language code to the translated name;
// it may be empty.
type SearchResult struct {
	ID           int               `json:"tvdb_id"`
	Name         string            `json:"name"`
	Year         int               `json:"year"`
	Type         string            `json:"type"` // "series" or "movie"
	Overview     string            `json:"overview"`
	Translations map[string]string `json:"translations"`
}

// EnglishName returns the English translation of the result's name, or ""
// when no translation is present.
func (r SearchResult) EnglishName() string {
	return r.Translations["eng"]
}

// loginResponse is the TVDB login API response.
type loginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token string `json:"token"`
	} `json:"data"`
}

// searchResponse is the TVDB search API response. Numeric fields arrive as
// strings and are converted at the boundary.
type searchResponse struct {
	Status string `json:"status"`
	Data   []struct {
		ObjectID     string            `json:"objectID"`
		Name         string            `json:"name"`
		Year         string            `json:"year"`
		Type         string            `json:"type"`
		Overview     string            `json:"overview"`
		TVDBID       string            `json:"tvdb_id"`
		Translations map[string]string `json:"translations"`
	} `json:"data"`
}
