package logofetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	wikidataSearchURL = "https://www.wikidata.org/w/api.php"
	wikidataEntityURL = "https://www.wikidata.org/wiki/Special:EntityData/%s.json"

	propOfficialWebsite  = "P856"
	propFacebookID       = "P2013"
	propLinkedInOrgID    = "P4264"
	propLinkedInOrgIDAlt = "P6634"
)

// Entity is the structured identity resolved for a brand. Any or all
// fields may be empty; downstream tolerates a zero Entity.
type Entity struct {
	Domain         string // official website host, www. stripped
	FacebookHandle string // page/username identifier
	LinkedInOrgID  string // numeric organization identifier
}

type wikidataClaim struct {
	Mainsnak struct {
		Datavalue struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

// ResolveEntity looks brand up in the knowledge base by free-text
// search, takes the first hit with a resolvable identifier, and
// extracts the official domain and social handles from its claims.
// Never fatal: any network or parse failure yields a zero Entity.
func (cfg *Config) ResolveEntity(ctx context.Context, brand string) Entity {
	cfg.defaults()

	q := url.Values{
		"action":   {"wbsearchentities"},
		"language": {"en"},
		"format":   {"json"},
		"search":   {brand},
	}
	res := cfg.fetch(ctx, wikidataSearchURL+"?"+q.Encode(), fetchOpts{})
	if res == nil {
		return Entity{}
	}

	var sr struct {
		Search []struct {
			ID string `json:"id"`
		} `json:"search"`
	}
	if json.Unmarshal(res.Data, &sr) != nil {
		return Entity{}
	}

	for _, hit := range sr.Search {
		if hit.ID == "" {
			continue
		}
		return cfg.fetchEntity(ctx, hit.ID)
	}
	return Entity{}
}

func (cfg *Config) fetchEntity(ctx context.Context, id string) Entity {
	res := cfg.fetch(ctx, fmt.Sprintf(wikidataEntityURL, url.PathEscape(id)), fetchOpts{})
	if res == nil {
		return Entity{}
	}

	var doc struct {
		Entities map[string]struct {
			Claims map[string][]wikidataClaim `json:"claims"`
		} `json:"entities"`
	}
	if json.Unmarshal(res.Data, &doc) != nil {
		return Entity{}
	}
	claims := doc.Entities[id].Claims

	var e Entity
	if raw := claimString(claims, propOfficialWebsite); raw != "" {
		if host := hostOf(raw); strings.Contains(host, ".") {
			e.Domain = strings.TrimPrefix(host, "www.")
		}
	}
	e.FacebookHandle = claimString(claims, propFacebookID)
	e.LinkedInOrgID = claimString(claims, propLinkedInOrgID)
	if e.LinkedInOrgID == "" {
		e.LinkedInOrgID = claimString(claims, propLinkedInOrgIDAlt)
	}
	if e.LinkedInOrgID == "" {
		e.LinkedInOrgID = scanLinkedInClaims(claims)
	}
	return e
}

// claimString returns the first string-valued claim for prop.
func claimString(claims map[string][]wikidataClaim, prop string) string {
	for _, c := range claims[prop] {
		var s string
		if json.Unmarshal(c.Mainsnak.Datavalue.Value, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

var linkedInCompanyRe = regexp.MustCompile(`linkedin\.com/company/([A-Za-z0-9-]+)`)

// scanLinkedInClaims is the secondary fallback: scan every string-valued
// claim for a LinkedIn company URL and take its trailing segment.
func scanLinkedInClaims(claims map[string][]wikidataClaim) string {
	for _, cs := range claims {
		for _, c := range cs {
			var s string
			if json.Unmarshal(c.Mainsnak.Datavalue.Value, &s) != nil {
				continue
			}
			if m := linkedInCompanyRe.FindStringSubmatch(s); m != nil {
				return m[1]
			}
		}
	}
	return ""
}
