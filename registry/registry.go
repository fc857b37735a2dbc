package registry

import (
	"math/rand"
	"strings"
)

// Registry maps topic keywords to a curated pool of seed accounts. Free-text
// queries are noisy; substring matching against the topic table is a cheap
// proxy for topical relevance and guarantees the fetch stage always has some
// targets. The table is loaded once and read-only afterwards, so concurrent
// Resolve calls need no locking.
type Registry struct {
	pools    map[string][]string
	fallback []string
}

var defaultPools = map[string][]string{
	"luxury":     {"thelaferrari", "rollsroyce", "lamborghini", "louisvuitton", "chanel", "rolex", "bugatti", "porsche", "ferrari", "billionaire_lifestyle", "luxurylifestyle", "bentley", "yacht"},
	"fashion":    {"zara", "hm", "gucci", "dior", "prada", "vogue", "balenciaga", "versace", "burberry", "givenchy", "fendi", "armani"},
	"style":      {"voguerunway", "fashionnova", "gq", "hypebeast", "highsnobiety", "mensfashion", "streetwear"},
	"business":   {"forbes", "entrepreneur", "incmagazine", "garyvee", "grantcardone", "tonyrobbins", "businessinsider", "hbr", "wsj", "bloomberg", "investopedia"},
	"marketing":  {"forbes", "entrepreneur", "garyvee", "socialmediamarketing", "digitalmarketing", "marketing"},
	"finance":    {"wsj", "bloomberg", "investopedia", "cnbc", "financialtimes", "yahoo_finance"},
	"art":        {"art", "artist", "drawing", "painting", "procreate", "digitalart", "artstationhq", "dailyart"},
	"design":     {"designboom", "dezeen", "archdigest", "interiordesign", "graphicdesign", "logodesign"},
	"gaming":     {"ign", "gamespot", "polygon", "kotaku", "gaming", "playstation", "xbox", "nintendo"},
	"tech":       {"mkbhd", "apple", "verge", "wired", "techcrunch", "engadget", "cnet", "mashable", "unboxtherapy", "mrwhosetheboss", "linustech", "ijustine"},
	"ai":         {"openai", "midjourney", "chatgpt", "artificialintelligence", "machinelearning", "deeplearning"},
	"crypto":     {"binance", "coinbase", "ethereum", "bitcoin", "crypto", "nft", "web3"},
	"fitness":    {"nike", "gymshark", "adidas", "underarmour", "reebok", "crossfit", "menshealth", "womenshealth", "bodybuilding", "fitnessmotivation", "gym", "workout"},
	"gym":        {"gymshark", "alphalete", "ryderwear", "goldsgym", "planetfitness", "equinox"},
	"food":       {"tasty", "buzzfeedtasty", "foodnetwork", "gordonramsay", "jamieoliver", "food52", "eater", "bonappetit", "seriouseats", "tastemade", "foodporn"},
	"cooking":    {"tasty", "nytfood", "bbcgoodfood", "chefsteps", "epicurious"},
	"travel":     {"natgeo", "earthpix", "beautifuldestinations", "lonelyplanet", "cntraveler", "travelchannel", "natgeotravel", "wonderful_places", "bestvacations", "roamtheplanet"},
	"nature":     {"natgeowild", "discoverearth", "nature", "earthfocus", "ourplanetdaily", "wildlifeplanet"},
	"motivation": {"foundrmagazine", "quotes", "mindset", "hustle", "grind", "wealth", "leadership"},
	"default":    {"instagram", "creators", "9gag", "pubity", "complex", "meme", "viral", "trending", "reels", "funny", "comedy", "epic"},
}

// New builds a Registry from the built-in curated topic table.
func New() *Registry {
	return NewFromPools(defaultPools)
}

// NewFromPools builds a Registry from an explicit table. The "default" key,
// when present, becomes the fallback pool for unmatched queries.
func NewFromPools(pools map[string][]string) *Registry {
	r := &Registry{pools: make(map[string][]string, len(pools))}
	for topic, accounts := range pools {
		if topic == "default" {
			r.fallback = accounts
			continue
		}
		r.pools[topic] = accounts
	}
	return r
}

// Resolve picks up to maxAccounts unique seed accounts for the query. A topic
// matches when it contains the normalized query or vice versa; all matching
// pools are unioned before sampling. Unmatched queries fall back to the
// default pool. The sample is randomized so repeated searches rotate through
// the pool instead of hammering the same accounts.
func (r *Registry) Resolve(query string, maxAccounts int) []string {
	q := Normalize(query)

	seen := make(map[string]struct{})
	var candidates []string
	for topic, accounts := range r.pools {
		if !strings.Contains(q, topic) && !strings.Contains(topic, q) {
			continue
		}
		if q == "" {
			// An empty query matches every topic via the substring rule;
			// treat it as unmatched so it lands on the fallback pool.
			continue
		}
		for _, a := range accounts {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			candidates = append(candidates, a)
		}
	}

	if len(candidates) == 0 {
		candidates = append(candidates, r.fallback...)
	}

	n := len(candidates)
	if maxAccounts < n {
		n = maxAccounts
	}
	if n < 0 {
		n = 0
	}

	sampled := make([]string, len(candidates))
	copy(sampled, candidates)
	rand.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	return sampled[:n]
}

// Normalize lowercases a query and strips hashtag markers and surrounding
// whitespace.
func Normalize(query string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(query), "#", ""))
}
