package usecase

import "fmt"

// 監査ログ用のis_activeスナップショット
func boolStateJSON(active bool) string {
	return fmt.Sprintf(`{"is_active":%t}`, active)
}
