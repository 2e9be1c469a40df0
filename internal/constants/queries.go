package constants

const (
	CountUsersByRole = `
	SELECT role, COUNT(*) AS total FROM users WHERE status = 'active' GROUP BY role
	`

	CountActivitiesByStatus = `
	SELECT status, COUNT(*) AS total FROM activities GROUP BY status
	`

	CountSessionsByStatus = `
	SELECT status, COUNT(*) AS total FROM mentoring_sessions GROUP BY status
	`

	CountQualificationsByStatus = `
	SELECT status, COUNT(*) AS total FROM qualifications GROUP BY status
	`

	CountVerificationsByStatus = `
	SELECT status, COUNT(*) AS total FROM verifications GROUP BY status
	`

	CountUnreadMessages = `
	SELECT COUNT(*) FROM messages WHERE read = FALSE
	`

	CountActiveAssignments = `
	SELECT COUNT(*) FROM assignments
	`

	MentorStudentItemTallies = `
	SELECT a.student_id,
	       u.name AS student_name,
	       COUNT(*) FILTER (WHERE act.status = 'pending')   AS pending,
	       COUNT(*) FILTER (WHERE act.status = 'submitted') AS submitted,
	       COUNT(*) FILTER (WHERE act.status = 'completed') AS completed,
	       COUNT(*) FILTER (WHERE act.status = 'rejected')  AS rejected
	FROM assignments a
	JOIN users u ON u.id = a.student_id
	LEFT JOIN activities act ON act.student_id = a.student_id
	WHERE a.mentor_id = $1
	GROUP BY a.student_id, u.name
	ORDER BY u.name
	`

	InsertSkillIgnoreDuplicate = `
	INSERT INTO skills (id, name, category, created_at, updated_at)
	VALUES ($1, $2, $3, NOW(), NOW())
	ON CONFLICT (name) DO NOTHING
	`
)
