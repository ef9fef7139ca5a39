package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const headerDateFormat = "2 January 2006"

// profileImageRe reconhece URLs de imagem de perfil no formato da plataforma
// para trocar pela thumbnail local em alta resolução, quando existir
var profileImageRe = regexp.MustCompile(
	`^https?://([^/]+)/profile_images/(\d+)/(.*)_normal(\.[a-zA-Z0-9-]+)?$`,
)

// DigestEntry é uma troca enriquecida com os metadados da conta necessários
// para a tabela do digest diário.
type DigestEntry struct {
	AccountID       string
	ObservedAt      time.Time
	PreviousName    string
	NewName         string
	FollowersCount  int
	Verified        bool
	Protected       bool
	ProfileImageURL string
}

// DigestOptions controla o recorte do digest. BaseDir é o diretório do
// dataset (onde vivem as thumbnails); os limites vêm da configuração e os
// defaults reproduzem o relatório publicado: 10 dias, piso de 200 seguidores.
type DigestOptions struct {
	BaseDir             string
	ReportedDaysLimit   int
	FollowersCountFloor int
}

type digestDay struct {
	date    time.Time
	entries []DigestEntry
}

// GenerateDailyDigest renderiza o digest markdown dos últimos dias de
// trocas detectadas, agrupado por dia de detecção (UTC), cada dia ordenado
// por contagem de seguidores decrescente.
func (g *Generator) GenerateDailyDigest(entries []DigestEntry, opts DigestOptions) string {
	byDate := make(map[time.Time][]DigestEntry)
	for _, entry := range entries {
		date := entry.ObservedAt.UTC().Truncate(24 * time.Hour)
		byDate[date] = append(byDate[date], entry)
	}

	days := make([]digestDay, 0, len(byDate))
	for date, dayEntries := range byDate {
		sort.SliceStable(dayEntries, func(i, j int) bool {
			if dayEntries[i].FollowersCount != dayEntries[j].FollowersCount {
				return dayEntries[i].FollowersCount > dayEntries[j].FollowersCount
			}
			return lessAccountID(dayEntries[i].AccountID, dayEntries[j].AccountID)
		})
		days = append(days, digestDay{date: date, entries: dayEntries})
	}

	// Dias mais recentes primeiro
	sort.Slice(days, func(i, j int) bool {
		return days[i].date.After(days[j].date)
	})

	if opts.ReportedDaysLimit > 0 && len(days) > opts.ReportedDaysLimit {
		days = days[:opts.ReportedDaysLimit]
	}

	var b strings.Builder

	b.WriteString("# Screen name changes\n")
	b.WriteString("This report tracks screen name changes for the tracked accounts.\n\n")
	fmt.Fprintf(
		&b,
		"This page presents the last %d days of available data for all accounts with more than %d followers.\n",
		opts.ReportedDaysLimit,
		opts.FollowersCountFloor,
	)
	b.WriteString("Please note:\n")
	b.WriteString("* The date listed indicates the day the change was detected, and in some cases it may have happened earlier.\n")
	b.WriteString("* The \"Account ID\" column provides a stable link for the account in cases where the screen name has been changed again.\n")
	b.WriteString("* Some accounts may have been suspended or deactivated since being added to the report.\n\n")
	b.WriteString("The full history of all detected changes for all tracked accounts is available in the [`data.csv`](./data.csv) file.\n")

	b.WriteString("## Contents\n")
	for _, day := range days {
		header := day.date.Format(headerDateFormat)
		fmt.Fprintf(
			&b,
			"* [%s (%d changes found)](#%s)\n",
			header,
			len(day.entries),
			strings.ReplaceAll(header, " ", "-"),
		)
	}

	for _, day := range days {
		included := 0
		for _, entry := range day.entries {
			if entry.FollowersCount >= opts.FollowersCountFloor {
				included++
			}
		}

		fmt.Fprintf(&b, "\n## %s\n", day.date.Format(headerDateFormat))
		fmt.Fprintf(&b, "Found %d screen name changes, with %d included here.\n", len(day.entries), included)

		b.WriteString("<table>\n")
		b.WriteString("<tr><th></th><th align=\"left\">Account ID</th><th align=\"left\">Previous screen name</th>\n")
		b.WriteString("<th align=\"left\">New screen name</th><th align=\"left\">Status</th><th align=\"left\">Follower count</th></tr>\n")

		for _, entry := range day.entries {
			if entry.FollowersCount < opts.FollowersCountFloor {
				continue
			}

			imageURL := thumbnailURL(entry.ProfileImageURL, opts.BaseDir)
			img := fmt.Sprintf(
				"<a href=\"%s\"><img src=\"%s\" width=\"40px\" height=\"40px\" align=\"center\"/></a>",
				entry.ProfileImageURL, imageURL,
			)
			idLink := fmt.Sprintf(
				"<a href=\"https://twitter.com/intent/user?user_id=%s\">%s</a>",
				entry.AccountID, entry.AccountID,
			)
			screenNameLink := fmt.Sprintf(
				"<a href=\"https://twitter.com/%s\">%s</a>",
				entry.NewName, entry.NewName,
			)

			var status strings.Builder
			if entry.Protected {
				status.WriteString("🔒")
			}
			if entry.Verified {
				status.WriteString("✔️")
			}

			fmt.Fprintf(
				&b,
				"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td align=\"center\">%s</td><td>%d</td></tr>\n",
				img,
				idLink,
				entry.PreviousName,
				screenNameLink,
				status.String(),
				entry.FollowersCount,
			)
		}

		b.WriteString("</table>\n")
	}

	return b.String()
}

// thumbnailURL troca a URL da imagem de perfil pela thumbnail local em
// 400x400 quando o arquivo existe no diretório base; caso contrário mantém a
// URL original.
func thumbnailURL(profileImageURL, baseDir string) string {
	captures := profileImageRe.FindStringSubmatch(profileImageURL)
	if captures == nil {
		return profileImageURL
	}

	id, name, extension := captures[2], captures[3], captures[4]
	path := fmt.Sprintf("./thumbnails/%s-%s_400x400%s", id, name, extension)

	if _, err := os.Stat(filepath.Join(baseDir, path)); err != nil {
		return profileImageURL
	}

	return path
}

// lessAccountID compara IDs numéricos representados como string na ordem
// numérica: o mais curto vem antes, desempate lexicográfico.
func lessAccountID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
