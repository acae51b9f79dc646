package drafting

import (
	"encoding/json"
	"fmt"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

func recallCommunicationPrompt(batch models.Batch, reason string) string {
	return fmt.Sprintf(`You are a regulatory officer for the AYUSH Ministry in India.
Your task is to draft a formal and urgent product recall notification for an Ayurvedic supply chain.
The communication must be bilingual (English and Hindi).

Use the following details:
- Batch ID: %s
- Product: %s
- Farmer: %s
- Reason for Recall: %s

Generate the complete, formatted recall notification.`,
		batch.ID, batch.PlantType, batch.FarmerName, reason)
}

func ruleDirectivePrompt(topic string) string {
	return fmt.Sprintf(`You are a regulatory officer for the AYUSH Ministry in India.
Draft an official directive for a new compliance rule for the Ayurvedic supply chain.
The topic of the rule is: %q.

The directive should be formal, clear, and include:
1. A directive number (e.g., AYUSH Ministry Directive - YYYY/MM-A).
2. An effective date (Immediately).
3. The subject of the rule.
4. The body of the rule, clearly stating the new mandate.
5. An enforcement section mentioning audits and penalties for non-compliance.
6. A closing signature line for "AYUSH Regulator".

Generate the full text of the directive.`, topic)
}

func upgradePlanPrompt(reason string) string {
	return fmt.Sprintf(`You are a senior blockchain developer creating a technical plan for a smart contract upgrade on the AyurTrace network.
The reason for the upgrade is: %q.

Generate a high-level technical plan that includes the following sections:
1. **Key Steps:** Detail the process from code freeze to deployment and verification.
2. **Potential Risks:** Identify potential issues like data migration errors, replay attacks, or downtime, and suggest mitigation strategies for each.
3. **Testing Strategy:** Describe the testing approach, including unit tests, integration tests on a testnet, and a third-party security audit.

The plan should be clear, concise, and technically sound, ensuring a safe and efficient upgrade.`, reason)
}

func inspectionNotesPrompt(batch models.Batch, alerts []models.Alert) string {
	if len(alerts) > 3 {
		alerts = alerts[:3]
	}

	historyJSON, _ := json.MarshalIndent(batch.History, "", "  ")
	alertsJSON, _ := json.MarshalIndent(alerts, "", "  ")

	return fmt.Sprintf(`You are an AI assistant for a regulator in the AyurTrace system, ensuring the integrity of the Ayurvedic supply chain. Your task is to generate concise and actionable inspection notes. The notes should be based on the provided batch data and recent system-wide alerts, highlighting potential risks or specific areas for verification.

**Batch Information:**
- ID: %s
- Plant Type: %s
- Farmer: %s
- Location: %s
- Full History: %s

**Recent System-Wide Alerts (Top 3):**
%s

Based on this data, provide a single, focused paragraph of inspection notes. For example: "Focus on verifying batch volume and concentration of active ingredients due to recent reports of unusually high harvest volume from this farmer. Cross-verify pesticide levels due to regional alerts."`,
		batch.ID, batch.PlantType, batch.FarmerName, batch.Location.State, historyJSON, alertsJSON)
}
