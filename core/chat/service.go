// Package chat powers the public chatbot widget. It leans on an external
// text-generation collaborator when one is reachable and falls back to
// keyword-matched canned answers when it is not; either way the reply is kept
// grounded in school facts. No conversation state is kept between calls.
package chat

import (
	"context"
	"strings"
)

// Generator is the external text-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// trigger pairs message keywords with the school fact they unlock. The fact is
// appended to generated replies; the canned text stands alone when generation
// is unavailable. Order is the match priority; first match wins.
type trigger struct {
	keywords []string
	fact     string
	canned   string
}

var triggers = []trigger{
	{
		keywords: []string{"fee", "payment", "pay"},
		fact: " For Mbizo High School, you can pay school fees through our payment portal. We accept EcoCash, OneMoney, " +
			"and bank transfers. Term fees are due by the 15th of each month.",
		canned: "You can pay school fees through our payment portal at Mbizo High School. Click on 'EcoCash Payments' in " +
			"the features section. We accept EcoCash, OneMoney, and bank transfers. Term fees are due by the 15th of each month.",
	},
	{
		keywords: []string{"exam", "test", "zimsec"},
		fact: " At Mbizo High School, exam timetables are available in the Notices section. You can also find ZIMSEC past " +
			"papers and revision materials in our Resources section.",
		canned: "Exam timetables are available in the Notices section at Mbizo High School. You can also find ZIMSEC past " +
			"papers and revision materials in our Resources section. Mid-term exams start next month!",
	},
	{
		keywords: []string{"event", "calendar", "when"},
		fact: " Check Mbizo High School's Calendar for all upcoming events! Sports Day is on February 15th, Parent-Teacher " +
			"meetings are scheduled for the last Friday of each month.",
		canned: "Check our School Calendar for all upcoming events at Mbizo High School! Sports Day is on February 15th, " +
			"Parent-Teacher meetings are scheduled for the last Friday of each month.",
	},
	{
		keywords: []string{"paper", "notes", "study"},
		fact: " Visit Mbizo High School's ZIMSEC Resources section for past papers, study notes, and revision guides for " +
			"all subjects. We have materials for both O-Level and A-Level students!",
		canned: "Visit our ZIMSEC Resources section for past papers, study notes, and revision guides for all subjects at " +
			"Mbizo High School. We have materials for both O-Level and A-Level students!",
	},
	{
		keywords: []string{"attendance", "absent", "present"},
		fact: " At Mbizo High School, parents can view their child's attendance in real-time through our Attendance " +
			"Tracker. We send SMS notifications for absences. Current term attendance requirement is 85%.",
		canned: "Parents can view their child's attendance in real-time through our Attendance Tracker at Mbizo High " +
			"School. We send SMS notifications for absences. Current term attendance requirement is 85%.",
	},
	{
		keywords: []string{"contact", "email", "phone"},
		fact: " You can reach Mbizo High School at:\n+263 40067\ninfo@mbizohigh.ac.zw\n3VW5+WJF, Mbizo, Kwekwe\n" +
			"Office hours: Mon-Fri, 7:30 AM - 4:00 PM",
		canned: "You can reach Mbizo High School at:\n+263 40067\ninfo@mbizohigh.ac.zw\n3VW5+WJF, Mbizo, Kwekwe\n" +
			"Office hours: Mon-Fri, 7:30 AM - 4:00 PM",
	},
}

// GenericReply is returned when no trigger matches and generation is unavailable.
const GenericReply = "I'm here to help with information about Mbizo High School. I can assist with fees, exams, events, " +
	"resources, attendance, and more. What would you like to know?"

// schoolKeywords mark a generated reply as already school-specific.
var schoolKeywords = []string{"school", "mbizo", "zimsec"}

type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Reply answers a single free-text message. Any generator failure degrades to
// a canned response rather than an error.
func (svc *Service) Reply(ctx context.Context, message string) string {
	generated, err := svc.gen.Generate(ctx, message)
	if err != nil {
		return CannedReply(message)
	}
	return enhance(generated, message)
}

// CannedReply picks the full canned answer for the first matching trigger.
func CannedReply(message string) string {
	if t := matchTrigger(message); t != nil {
		return t.canned
	}
	return GenericReply
}

// enhance appends the matching school fact when the generated reply isn't
// school-specific on its own.
func enhance(reply, message string) string {
	lowerReply := strings.ToLower(reply)
	for _, kw := range schoolKeywords {
		if strings.Contains(lowerReply, kw) {
			return reply
		}
	}
	if t := matchTrigger(message); t != nil {
		return reply + t.fact
	}
	return reply
}

func matchTrigger(message string) *trigger {
	lower := strings.ToLower(message)
	for i := range triggers {
		for _, kw := range triggers[i].keywords {
			if strings.Contains(lower, kw) {
				return &triggers[i]
			}
		}
	}
	return nil
}
