// pdf/contract.go
package pdf

import (
	"fmt"
	"time"
)

// PaymentMethodLine is one active payment channel shown in the payment
// terms section.
type PaymentMethodLine struct {
	Label   string
	Details []string
}

// Signatures carries the captured signature images as data URIs. A nil
// pair renders the unsigned agreement sent at issuance; a populated pair
// renders the fully-executed document.
type Signatures struct {
	Client string
	Admin  string
}

// ContractData is everything the agreement template needs. The same
// template serves issuance and finalization; only Signatures differs.
type ContractData struct {
	ContractNumber string
	BusinessName   string
	AgentName      string

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string
	City          string

	ServiceName        string
	ServiceDescription string
	StartDate          time.Time
	EndDate            *time.Time
	StartTime          string
	EndTime            string
	HoursPerDay        int
	TotalPrice         float64

	PaymentMethods []PaymentMethodLine
	Signatures     *Signatures
}

type section struct {
	title string
	lines []string
}

// FormatPrice renders a dollar amount the way the agreement shows it.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// RenderContract renders the service agreement and returns the PDF bytes.
func RenderContract(data ContractData) ([]byte, error) {
	w := NewDocWriter()

	w.WriteCentered(data.BusinessName, "B", 16)
	w.Gap(2)
	w.WriteCentered("HOME CARE SERVICE AGREEMENT", "B", 13)
	w.Gap(2)
	w.WriteCentered("Agreement No. "+data.ContractNumber, "", 9)
	w.Gap(6)

	for _, s := range buildSections(data) {
		w.EnsureSpace(14)
		w.WriteLine(s.title, "B", 11)
		w.Gap(1)
		for _, line := range s.lines {
			w.WriteWrapped(line, bodyFontSize)
		}
		w.Gap(5)
	}

	renderSignatureBlocks(w, data)

	w.Gap(6)
	w.WriteWrapped("This agreement becomes effective once signed by both the client "+
		"and an authorized company representative. A fully executed copy will be "+
		"emailed to the client for their records.", 9)

	return w.Output()
}

// buildSections assembles the numbered body of the agreement as data so
// both generation paths share one template.
func buildSections(data ContractData) []section {
	schedule := describeSchedule(data)

	paymentLines := []string{
		"The total price for the services described above is " +
			FormatPrice(data.TotalPrice) + ", payable upon completion of " +
			"services unless otherwise agreed in writing.",
		"Payment is accepted through the following methods:",
	}
	for _, m := range data.PaymentMethods {
		paymentLines = append(paymentLines, "- "+m.Label)
		for _, d := range m.Details {
			paymentLines = append(paymentLines, "    "+d)
		}
	}

	return []section{
		{
			title: "1. Client Information",
			lines: []string{
				"Name: " + data.ClientName,
				"Email: " + data.ClientEmail,
				"Phone: " + data.ClientPhone,
				"Address: " + data.ClientAddress,
				"City: " + data.City,
			},
		},
		{
			title: "2. Scope of Services",
			lines: append([]string{
				"Service: " + data.ServiceName,
				data.ServiceDescription,
			}, schedule...),
		},
		{
			title: "3. Payment Terms",
			lines: paymentLines,
		},
		{
			title: "4. Responsibilities",
			lines: []string{
				"The company will provide trained caregivers to perform the agreed " +
					"services with reasonable skill and care. The client agrees to " +
					"provide a safe working environment and access to the premises at " +
					"the scheduled times, and to notify the company of any change in " +
					"the care recipient's condition that affects the services.",
			},
		},
		{
			title: "5. Termination",
			lines: []string{
				"Either party may terminate this agreement with 48 hours written " +
					"notice. Services rendered up to the effective date of termination " +
					"remain payable in full.",
			},
		},
		{
			title: "6. Limitation of Liability",
			lines: []string{
				"The company's liability under this agreement is limited to the " +
					"total amount paid by the client for the services. The company is " +
					"not liable for indirect or consequential damages except where " +
					"such limitation is prohibited by law.",
			},
		},
		{
			title: "7. Confidentiality",
			lines: []string{
				"The company will keep all client and care recipient information " +
					"confidential and will not disclose it to third parties except as " +
					"required to deliver the services or as required by law.",
			},
		},
		{
			title: "8. Governing Law",
			lines: []string{
				"This agreement is governed by the laws of the state in which the " +
					"services are performed.",
			},
		},
	}
}

func describeSchedule(data ContractData) []string {
	lines := []string{"Start date: " + data.StartDate.Format("January 2, 2006")}
	if data.EndDate != nil {
		lines = append(lines, "End date: "+data.EndDate.Format("January 2, 2006"))
	}
	if data.StartTime != "" && data.EndTime != "" {
		lines = append(lines, fmt.Sprintf("Daily schedule: %s - %s", data.StartTime, data.EndTime))
	}
	if data.HoursPerDay > 0 {
		lines = append(lines, fmt.Sprintf("Hours per day: %d", data.HoursPerDay))
	}
	if data.AgentName != "" {
		lines = append(lines, "Assigned caregiver: "+data.AgentName)
	}
	return lines
}

func renderSignatureBlocks(w *DocWriter, data ContractData) {
	w.EnsureSpace(80)
	w.WriteLine("9. Signatures", "B", 11)
	w.Gap(4)

	var clientSig, adminSig string
	if data.Signatures != nil {
		clientSig = data.Signatures.Client
		adminSig = data.Signatures.Admin
	}

	renderSignatureLine(w, "sig_client", "Client", data.ClientName, clientSig)
	w.Gap(8)
	renderSignatureLine(w, "sig_admin", "Company Representative", data.AgentName, adminSig)
}

func renderSignatureLine(w *DocWriter, name, role, signer, sigDataURI string) {
	w.EnsureSpace(32)
	w.WriteLine(role+":", "B", bodyFontSize)
	w.Gap(2)

	if sigDataURI != "" {
		if err := w.Image(name, sigDataURI, 60, 20); err != nil {
			// unusable image falls back to a blank signature line
			w.Gap(14)
			w.Underline(70)
		}
	} else {
		w.Gap(14)
		w.Underline(70)
	}

	w.Gap(1)
	if signer != "" {
		w.WriteLine(signer, "", 9)
	}
	w.WriteLine("Date: "+time.Now().Format("January 2, 2006"), "", 9)
}
