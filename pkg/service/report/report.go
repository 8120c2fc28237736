package report

import (
	"strings"

	"github.com/secmon-lab/casebook/pkg/domain/model"
)

// Section titles, field labels and table columns of the printed report
const (
	titleGeneralInfo          = "معلومات عامة"
	titleFamilyInfo           = "معلومات الأسرة"
	titleSiblings             = "معلومات الإخوة والأخوات"
	titleMedicalHistory       = "التاريخ الصحي"
	titleMedications          = "الأدوية المستخدمة"
	titleDevelopmentalHistory = "التاريخ التطوري"
	titleCurrentPerformance   = "مستوى الأداء الحالي"
	titleFinalReport          = "التقرير النهائي والتوصيات"
)

// builder accumulates fields of one block while applying locale rules
type builder struct {
	locale model.Locale
	fields []model.ReportField
}

func (b *builder) text(label, value string) {
	if value == "" {
		value = b.locale.NotSpecified
	}
	b.fields = append(b.fields, model.ReportField{Label: label, Value: value})
}

func (b *builder) flag(label string, value bool) {
	v := b.locale.No
	if value {
		v = b.locale.Yes
	}
	b.fields = append(b.fields, model.ReportField{Label: label, Value: v})
}

func (b *builder) long(label, value string) {
	if value == "" {
		value = b.locale.None
	}
	b.fields = append(b.fields, model.ReportField{Label: label, Value: value, Long: true})
}

// list renders one item per non-blank line with a leading "- " removed
func (b *builder) list(label, value string) {
	if value == "" {
		b.long(label, value)
		return
	}
	b.fields = append(b.fields, model.ReportField{
		Label: label,
		Value: value,
		Long:  true,
		Items: splitItems(value),
	})
}

func (b *builder) block(title string) model.ReportBlock {
	blk := model.ReportBlock{Title: title, Fields: b.fields}
	b.fields = nil
	return blk
}

func splitItems(value string) []string {
	items := []string{}
	for _, line := range strings.Split(value, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, strings.TrimPrefix(line, "- "))
	}
	return items
}

func cell(value, empty string) string {
	if value == "" {
		return empty
	}
	return value
}

// Build lays out the study as a report. It does not modify its inputs.
func Build(study model.CaseStudy, branding model.BrandingSettings, locale model.Locale) model.Report {
	locale = locale.WithDefaults()
	b := &builder{locale: locale}

	g := study.GeneralInfo
	f := study.FamilyInfo
	m := study.MedicalHistory
	d := study.DevelopmentalHistory
	p := study.CurrentPerformance
	r := study.FinalReport

	rpt := model.Report{
		Title:     locale.ReportTitle,
		ChildName: cell(g.ChildFullName, locale.UnnamedChild),
	}
	if branding.HasHeader() {
		rpt.Header = &model.ReportHeader{
			OrganizationName: branding.OrganizationName,
			Logo:             branding.Logo,
		}
	}
	if branding.HasFooter() {
		rpt.Footer = &model.ReportFooter{
			Address:     branding.Address,
			ContactInfo: branding.ContactInfo,
		}
	}

	b.text("رقم الحالة", g.CaseNumber)
	b.text("الجنس", g.Gender)
	b.text("تاريخ الميلاد", g.BirthDate)
	b.text("العمر", g.Age)
	b.text("الجنسية", g.Nationality)
	b.text("مكان الميلاد", g.BirthPlace)
	b.text("اسم ولي الأمر", g.GuardianName)
	b.text("صلة القرابة", g.GuardianRelation)
	b.text("جهة الإحالة", g.ReferralSource)
	b.text("تاريخ الإحالة", g.ReferralDate)
	b.long("سبب التحويل", g.ReferralReason)
	rpt.Blocks = append(rpt.Blocks, b.block(titleGeneralInfo))

	b.text("اسم الأب", f.FatherName)
	b.text("مهنة الأب", f.FatherProfession)
	b.text("اسم الأم", f.MotherName)
	b.text("مهنة الأم", f.MotherProfession)
	b.text("العلاقة بين الوالدين", f.ParentsRelationship)
	b.text("مقيم مع", f.WhoChildLivesWith)
	b.text("دخل الأسرة الشهري", f.MonthlyIncome)
	b.flag("انفصال الوالدين", f.ParentsSeparated)
	b.long("ضغوط أسرية", f.FamilyPressures)
	b.flag("أقارب بحالات مشابهة", f.RelativesWithConditions)
	if f.RelativesWithConditions {
		b.long("تقرير عن حالة الأقارب", f.RelativesConditionReport)
	}
	rpt.Blocks = append(rpt.Blocks, b.block(titleFamilyInfo))

	if len(f.Siblings) > 0 {
		table := &model.ReportTable{
			Columns: []string{"الاسم", "العمر", "الحالة الصحية", "المستوى التعليمي"},
		}
		for _, s := range f.Siblings {
			table.Rows = append(table.Rows, []string{
				cell(s.Name, locale.EmptyCell),
				cell(s.Age, locale.EmptyCell),
				cell(s.HealthStatus, locale.EmptyCell),
				cell(s.EducationLevel, locale.EmptyCell),
			})
		}
		rpt.Blocks = append(rpt.Blocks, model.ReportBlock{Title: titleSiblings, Table: table})
	}

	b.text("مدة الحمل", m.PregnancyDuration)
	b.text("نوع الولادة", m.BirthType)
	b.text("وزن الولادة", m.BirthWeight)
	b.text("مقياس أبغار", m.ApgarScore)
	b.flag("نقص الأوكسجين عند الولادة", m.OxygenDeprivation)
	b.flag("استخدام أدوات مساعدة بالولادة", m.UsedBirthTools)
	b.flag("وضع في الحاضنة", m.Incubator)
	b.long("مضاعفات الحمل", m.PregnancyComplications)
	b.long("مشاكل ما بعد الولادة", m.PostNatalIssues)
	rpt.Blocks = append(rpt.Blocks, b.block(titleMedicalHistory))

	if len(m.Medications) > 0 {
		table := &model.ReportTable{
			Columns: []string{"اسم الدواء", "الجرعة", "سبب الاستخدام", "مدة الاستخدام"},
		}
		for _, med := range m.Medications {
			table.Rows = append(table.Rows, []string{
				cell(med.Name, locale.EmptyCell),
				cell(med.Dose, locale.EmptyCell),
				cell(med.Reason, locale.EmptyCell),
				cell(med.Duration, locale.EmptyCell),
			})
		}
		rpt.Blocks = append(rpt.Blocks, model.ReportBlock{Title: titleMedications, Table: table})
	}

	b.text("عمر الحبو", d.CrawlingAge)
	b.text("عمر الجلوس", d.SittingAge)
	b.text("عمر المشي", d.WalkingAge)
	b.text("عمر نطق أول كلمة", d.FirstWordAge)
	b.text("عمر نطق أول جملة", d.FirstSentenceAge)
	b.text("عمر التسنين", d.TeethingAge)
	b.long("أعراض نمو غير طبيعية", d.UnusualGrowthSymptoms)
	b.long("تراجع لغوي أو اجتماعي", d.LanguageRegression)
	rpt.Blocks = append(rpt.Blocks, b.block(titleDevelopmentalHistory))

	b.long("مهارات الاعتماد على النفس", p.SelfCareSkills)
	b.long("المهارات الاجتماعية", p.SocialSkills)
	b.long("مهارات اللغة والتواصل", p.CommunicationSkills)
	b.long("المهارات الأكاديمية", p.AcademicSkills)
	b.long("المهارات الحركية", p.MotorSkills)
	b.long("الجانب الحسي", p.SensoryProfile)
	b.long("أشياء يحبها الطفل", p.ChildInterests)
	b.long("أشياء لا يحبها الطفل", p.ChildDislikes)
	rpt.Blocks = append(rpt.Blocks, b.block(titleCurrentPerformance))

	b.long("رأي الاختصاصي", r.SpecialistOpinion)
	b.list("التوصيات النهائية", r.Recommendations)
	rpt.Blocks = append(rpt.Blocks, b.block(titleFinalReport))

	return rpt
}
