package refdata

import (
	"github.com/nasserq/raqeeb"
)

// Locations returns the facility location roster. Each location is bound
// to the zone that sets its risk weighting and the form used to inspect
// it.
func Locations() []*raqeeb.Location {
	high := func(id string, en, ar string) *raqeeb.Location {
		return &raqeeb.Location{ID: id, Name: raqeeb.LocalizedName{EN: en, AR: ar}, ZoneID: "zone_high", FormID: FormHighRisk}
	}
	medium := func(id string, en, ar string) *raqeeb.Location {
		return &raqeeb.Location{ID: id, Name: raqeeb.LocalizedName{EN: en, AR: ar}, ZoneID: "zone_medium", FormID: FormMediumRisk}
	}
	low := func(id string, en, ar string) *raqeeb.Location {
		return &raqeeb.Location{ID: id, Name: raqeeb.LocalizedName{EN: en, AR: ar}, ZoneID: "zone_low", FormID: FormLowRisk}
	}

	return []*raqeeb.Location{
		high("loc_h_1", "Ward 7-8, NTCC", "جناح 8-7، NTCC"),
		high("loc_h_2", "Ward 22-23, Toxicology Bldg", "جناح 23-22، مبنى السموم"),
		high("loc_h_3", "Ward 6-13-14-15, ER Area", "جناح 6-13-14-15، منطقة الطوارئ"),
		high("loc_h_4", "Ward 5, CSSD", "جناح 5، CSSD"),
		high("loc_h_5", "Ward 24-25, ER Area, NTCC Labor Rm", "جناح 24-25، منطقة الطوارئ، NTCC قسم الولادة"),
		high("loc_h_6", "Ward 17-18-20, ICU & Wings", "جناح 17-18-20، وحدة العناية المركزة وأجنحتها"),

		medium("loc_m_1", "Princess Noura Center (2 Floors)", "مركز الأميرة نورة (طابقين)"),
		medium("loc_m_2", "Women's Care Unit & Wings", "وحدة عناية المرأة وأجنحتها"),
		medium("loc_m_3", "NTCC Treatment Unit", "وحدة علاج NTCC"),
		medium("loc_m_4", "Main Operating Rooms", "غرف العمليات الرئيسية"),
		medium("loc_m_5", "MC1-MC3, Heart Center (3 Floors)", "MC1-MC3، مركز القلب (ثلاثة طوابق)"),
		medium("loc_m_6", "Main OR, NTCC Burns Unit", "غرف العمليات الرئيسية، NTCC إصابات الحرائق"),
		medium("loc_m_7", "All OR Wings", "غرف العمليات جميع الأجنحة"),
		medium("loc_m_8", "Field Military Medicine Command", "قيادة الطب العسكري الميداني"),
		medium("loc_m_9", "Internal Projects Dept.", "إدارة المشاريع الداخلية"),
		medium("loc_m_10", "All Corridors & Toilets, MC4", "كل الممرات والحمامات، MC4"),
		medium("loc_m_11", "Nutrition Department", "قسم التغذية"),
		medium("loc_m_12", "Anesthesia Department", "قسم التخدير"),
		medium("loc_m_13", "Al-Razi Hall", "قاعة الرازي"),
		medium("loc_m_14", "Morgue", "مغسلة الموتى"),
		medium("loc_m_15", "External Maintenance & Projects Area", "منطقة إدارة الصيانة والمشاريع الخارجية"),
		medium("loc_m_16", "General Waste Rooms", "غرف النفايات العامة"),
		medium("loc_m_17", "Medical Admin Offices, NTCC", "مكاتب الإدارة الطبية، NTCC"),
		medium("loc_m_18", "Guard Rooms, Gates, All Radiology", "غرف الحراس والبوابات، الأشعة بجميع أنواعها"),
		medium("loc_m_19", "New Admin Building", "المبنى الإداري الجديد"),
		medium("loc_m_20", "Chiller Plant (Neurology)", "محطة التبريد (الأعصاب)"),
		medium("loc_m_21", "Nursing Department", "قسم التمريض"),

		low("loc_l_1", "All Hospital Gardens", "جميع الحدائق بالمستشفى"),
		low("loc_l_2", "Princess Noura Center, Dental", "مركز الأميرة نورة، قسم الأسنان"),
		low("loc_l_3", "Ward 16, Therapy", "جناح 16، العلاج"),
		low("loc_l_4", "MFUM, Ward 1-2-3-4", "MFUM، جناح 1-2-3-4"),
		low("loc_l_5", "Social Service & Academic Affairs", "الخدمة الاجتماعية والشؤون الأكاديمية"),
		low("loc_l_6", "Ward 11-12, Outpatient Clinics (3 Floors)", "جناح 11-12، مبنى العيادات الخارجية (ثلاثة طوابق)"),
		low("loc_l_7", "Ward 28-30-31, Urology", "جناح 28-30-31، جراحة المسالك البولية"),
		low("loc_l_8", "Recovery Ward", "جناح الإفاقة"),
		low("loc_l_9", "Healthcare Administration", "إدارة الرعاية الصحية"),
		low("loc_l_10", "Main Mosque", "المسجد الرئيسي"),
		low("loc_l_11", "Education Rooms & Library", "الغرف التعليمية والمكتبة"),
		low("loc_l_12", "Main Radiology & Sub-departments", "الأشعة الرئيسية والأقسام التابعة"),
		low("loc_l_13", "Blood Donation Center", "مركز التبرع بالدم"),
		low("loc_l_14", "Ward 40-41-50-51, New Central Lab", "جناح 40-41-50-51، المختبر المركزي الجديد"),
		low("loc_l_15", "External Waiting Rooms", "غرف الانتظار الخارجية"),
		low("loc_l_16", "Visitor Parking", "مواقف السيارات الزوار"),
		low("loc_l_17", "On-call Doctors Rooms (M/F)", "غرف الأطباء المناوبين رجال ونساء"),
		low("loc_l_18", "Female Prayer Rooms", "مصليات النساء"),
		low("loc_l_19", "CSSD - NTCC - Day Surgery", "CSSD - NTCC - عمليات اليوم الواحد"),
		low("loc_l_20", "Al-Endijani Hall", "قاعة الإندجاني"),
		low("loc_l_21", "All Pharmacies", "جميع الصيدليات"),
		low("loc_l_22", "Admin Building Parking", "مواقف السيارات المبنى الإداري"),
		low("loc_l_23", "Therapy Prayer Rooms", "مصليات العلاج"),
		low("loc_l_24", "Penthouse", "PENT HOUSE"),
		low("loc_l_25", "Medical Pergola", "Pergola medical"),
		low("loc_l_26", "Guest House", "Guest House"),
		low("loc_l_27", "Old Natural Therapy", "الطبيعي القديم"),
		low("loc_l_28", "Private Therapy Offices", "مكاتب أهلية العلاج"),
		low("loc_l_29", "Main Inpatient Pharmacy", "الصيدلة الداخلية الرئيسية"),
		low("loc_l_30", "Transportation Dept.", "إدارة المواصلات"),
		low("loc_l_31", "Business & Catering Dept.", "قسم الأعمال والتموين"),
		low("loc_l_32", "Admin Pergola", "Pergola admin"),
		low("loc_l_33", "Information Center", "مركز المعلومات"),
		low("loc_l_34", "Blood Bank", "بنك الدم"),
		low("loc_l_35", "Central Office", "سنترال"),
		low("loc_l_36", "Day Care", "Day Care"),
		low("loc_l_37", "Medical Coordination", "التنسيق الطبي"),
		low("loc_l_38", "Project Management Offices", "مكاتب إدارة المشاريع"),
		low("loc_l_39", "PHC New Field Medicine", "PHC الطب الميداني الجديد"),
		low("loc_l_40", "Neurology & ER Parking", "مواقف مركز الأعصاب والطوارئ"),
		low("loc_l_41", "MC2, Maintenance & Medical Eq. Mgmt.", "إدارة MC2 والصيانة والأجهزة الطبية"),
		low("loc_l_42", "Generator Building (Neurology)", "مبنى المولدات (الأعصاب)"),
		low("loc_l_43", "Mail, Finance, Investigation, Property, Contracts", "البريد والمالية والتحقيق والممتلكات والعقود"),
		low("loc_l_44", "Physical Therapy Parking", "مواقف السيارات العلاج الطبيعي"),
		low("loc_l_45", "Infection Control & Comm. Offices", "مكاتب مكافحة العدوى والاتصالات"),
		low("loc_l_46", "Physical Therapy Mosque & Parking", "مسجد ومواقف العلاج الطبيعي"),
		low("loc_l_47", "National Guard Housing, Jeddah", "إسكان الحرس الوطني بجدة"),
		low("loc_l_48", "Health Centers (Umm Al-Salam, etc.)", "مراكز صحية (أم السلم، الشرائع، بحرة، الطائف، جازان)"),
		low("loc_l_49", "Preventive Medicine Center", "مركز الطب الوقائي"),
		low("loc_l_50", "PHC Clinic", "عيادة PHC"),
		low("loc_l_51", "PHC Supervisor's Office", "PHC supervisor's"),
		low("loc_l_52", "Boiler Building (Neurology)", "مبنى الغلايات (الأعصاب)"),
		low("loc_l_53", "Taif Mosque", "مسجد الطائف"),
		low("loc_l_54", "CMC Clinic", "عيادة CMC"),
		low("loc_l_55", "Training Center", "مركز التدريب"),
		low("loc_l_56", "Comprehensive Specialty Clinics Center", "مركز العيادات التخصصية الشاملة"),
	}
}
