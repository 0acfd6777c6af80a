package schema

import "strconv"

func countOptions(start, end int) []Option {
	opts := make([]Option, 0, end-start+1)
	for i := start; i <= end; i++ {
		v := strconv.Itoa(i)
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}

func choices(values ...string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}

var stepSubOptions = choices(
	"발판상부",
	"발판상부(자리없음)",
	"발판 2단",
	"발판하부",
	"발판없음",
)

func stepField(id, label string) FieldDefinition {
	return FieldDefinition{
		ID:          id,
		Label:       label,
		Kind:        InputSelect,
		Category:    CategorySafety,
		Options:     stepSubOptions,
		VisibleWhen: `step_status == "있음"`,
	}
}

// Default returns the built-in site-inspection checklist.
func Default() *Config {
	return MustNew([]FieldDefinition{
		// 기본 정보 (1~8)
		{
			ID:       "siteType",
			Label:    "1. 국사형태",
			Kind:     InputSelect,
			Category: CategoryBasic,
			Options:  choices("나대지", "건물", "터널/지하철", "컨테이너", "교각", "지하철", "트레일러", "기타"),
		},
		{
			ID:       "equipLoc",
			Label:    "2. 장비설치위치",
			Kind:     InputSelect,
			Category: CategoryBasic,
			Options:  choices("실내-지상", "실내-지하", "실외-옥상", "실외-옥탑", "실외-구축물"),
		},
		{
			ID:          "installFloor",
			Label:       "3. 설치층",
			Kind:        InputText,
			Category:    CategoryBasic,
			Placeholder: "예: 1층, B1층, 옥상",
		},
		{
			ID:       "qty_dist_box",
			Label:    "4. 분전함 (개수)",
			Kind:     InputSelect,
			Category: CategoryBasic,
			Options:  countOptions(0, 10),
		},
		{
			ID:       "qty_cabinet_a",
			Label:    "5. 부가함체 A망 (개수)",
			Kind:     InputSelect,
			Category: CategoryBasic,
			Options:  countOptions(0, 10),
		},
		{
			ID:       "qty_cabinet_trans",
			Label:    "6. 부가함체 전송망 (개수)",
			Kind:     InputSelect,
			Category: CategoryBasic,
			Options:  countOptions(0, 10),
		},
		{
			ID:       "qty_cabinet_batt",
			Label:    "7. 부가함체 축전지 (개수)",
			Kind:     InputSelect,
			Category: CategoryBasic,
			Options:  countOptions(0, 10),
		},
		{
			ID:       "qty_cabinet_mixed",
			Label:    "8. 부가함체 A망+전송망 (개수)",
			Kind:     InputSelect,
			Category: CategoryBasic,
			Options:  countOptions(0, 10),
		},

		// 공중선 (9~13)
		{
			ID:       "towerType",
			Label:    "9. 철탑유형",
			Kind:     InputSelect,
			Category: CategoryAntenna,
			Options:  choices("철탑", "옥상철탑", "강관주", "전주", "IP주", "벽부폴", "원폴", "분산폴", "프레임"),
		},
		{
			ID:       "towerQty",
			Label:    "10. 설치 수량",
			Kind:     InputSelect,
			Category: CategoryAntenna,
			Options:  countOptions(1, 10),
		},
		{
			ID:       "guyWireCount",
			Label:    "11. 지선 수",
			Kind:     InputSelect,
			Category: CategoryAntenna,
			Options:  choices("1", "2", "3", "미설치"),
			RepeatBy: "towerQty",
		},
		{
			ID:       "screening",
			Label:    "12. 가림막",
			Kind:     InputSelect,
			Category: CategoryAntenna,
			Options:  choices("가림막 있음", "가림막 없음", "개별안테나 환경친화형"),
		},
		{
			ID:       "antLoc",
			Label:    "13. 안테나설치위치",
			Kind:     InputSelect,
			Category: CategoryAntenna,
			Options:  choices("옥상", "옥탑"),
		},

		// 안전 관리 (14~15)
		{
			ID:       "step_status",
			Label:    "14. 발판 상태",
			Kind:     InputSelect,
			Category: CategorySafety,
			Options: []Option{
				{Label: "있음 (세부항목 입력)", Value: "있음"},
				{Label: "없음 (높이/사다리 입력)", Value: "없음"},
			},
		},
		stepField("step_b3", "14-1. B3 발판"),
		stepField("step_b5", "14-2. B5 발판"),
		stepField("step_b7", "14-3. B7 발판"),
		stepField("step_b1", "14-4. B1 발판"),
		stepField("step_mc", "14-5. MC 발판"),
		stepField("step_mibos", "14-6. MIBOS 발판"),
		stepField("step_rect1", "14-7. LTE정류기#1"),
		stepField("step_rect2", "14-8. LTE정류기#2"),
		stepField("step_5g_rect", "14-9. 5G정류기"),
		stepField("step_5g_mux", "14-10. 5G MUX"),
		stepField("step_dist1", "14-11. 분전함#1"),
		stepField("step_dist2", "14-12. 분전함#2"),
		stepField("step_ojc1", "14-13. OJC#1"),
		stepField("step_ojc2", "14-14. OJC#2"),
		{
			ID:          "step_height",
			Label:       "14-15. 높이",
			Kind:        InputSelect,
			Category:    CategorySafety,
			Options:     choices("1.5m 이상", "1.5m 미만"),
			VisibleWhen: `step_status == "없음"`,
		},
		{
			ID:          "step_ladder_req",
			Label:       "14-16. 사다리 필요여부",
			Kind:        InputRadio,
			Category:    CategorySafety,
			Options:     choices("필요", "불필요"),
			VisibleWhen: `step_status == "없음"`,
		},
		{
			ID:       "ladder_status",
			Label:    "15. 사다리",
			Kind:     InputRadio,
			Category: CategorySafety,
			Options:  choices("있음", "없음"),
		},

		// 출입 (16~19)
		{
			ID:       "military",
			Label:    "16. 군부대",
			Kind:     InputSelect,
			Category: CategoryAccess,
			Options:  choices("민통선 내", "민통선 군부대 내", "일반 군부대 내", "해당 없음"),
		},
		{
			ID:       "accessRequired",
			Label:    "17. 상시출입 필요",
			Kind:     InputSelect,
			Category: CategoryAccess,
			Options:  choices("군부대 통보 필요", "관리자 통보 필요", "해당 없음"),
		},
		{
			ID:       "highAltitude",
			Label:    "18. 고지국소",
			Kind:     InputSelect,
			Category: CategoryAccess,
			Options:  choices("폭설 시 진입불가", "해당 없음"),
		},
		{
			ID:       "floodingRisk",
			Label:    "19. 침수예상",
			Kind:     InputSelect,
			Category: CategoryAccess,
			Options:  choices("침수위험(강, 하천)", "침수위험(저수지)", "침수위험(지하)", "해당 없음"),
		},

		// 비고
		{
			ID:          "remarks",
			Label:       "비고",
			Kind:        InputTextarea,
			Category:    CategoryAccess,
			Placeholder: "특이사항을 입력하세요 (100자 이내)",
		},
	})
}
