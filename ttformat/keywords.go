package ttformat

import "strings"

// serviceTextKeywords catches service-note phrases (day names, legends,
// fare/reservation notes) in Czech, Slovak, German and English. The list is
// a pragmatic denylist derived empirically from real KOMPLET data; it is
// known to be incomplete (spec §9 open question).
var serviceTextKeywords = [...]string{
	"arbeitstage",
	"working day",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
	"jede",
	"premáva",
	"montag",
	"dienstag",
	"mittwoch",
	"donnerstag",
	"freitag",
	"samstag",
	"sonntag",
	"pondělí",
	"úterý",
	"středu",
	"čtvrtek",
	"pátek",
	"sobotu",
	"neděli",
	"pracovních dnech",
	"pondelok",
	"utorok",
	"stredu",
	"štvrtok",
	"piatok",
	"nedeľu",
	"pracovných dňoch",
	"jede v",
	"státem uznané svátky",
	"štátom uznané sviatky",
	"platzreservierung",
	"místenku",
	"rezervace",
	"rezervácia",
	"bezbariéro",
	"občerstven",
	"na znamení",
	"na znamenie",
	"integrovanej dopravy",
	"svátek",
	"sviat",
}

// badStopKeywords flags URL/copyright markers seen in legend text mixed
// into the stop-name blob.
var badStopKeywords = [...]string{
	"copyright",
	"http://",
	"https://",
	"internet",
	"pid.tt",
}

// stopNoteKeywords flags route-note and fare/ticket-info fragments.
var stopNoteKeywords = [...]string{
	"{l}",
	"¤¤",
	"spoj ",
	"linka ",
	"jede jen",
	"tarif",
	"přeprav",
	"preprav",
	"ceník",
	"cenník",
	"informace",
	"vozidlech",
	"zvýhodně",
	"zvyhodne",
	"bankovní",
	"bankovu",
	"na lince platí",
}

// poiKeywords flags bank branches and other points of interest that share
// the stop-name blob but are never referenced as transit stops.
var poiKeywords = [...]string{
	"unicredit",
	"spořitelna",
	"sporitelna",
	"pobočka",
	"pobocka",
	"a.s.",
	"bankomat",
	"banka,",
	"bank,",
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func isServiceText(name string) bool {
	return containsAny(strings.ToLower(name), serviceTextKeywords[:])
}
