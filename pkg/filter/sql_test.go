package filter

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

var _ = Describe("ToSqlizer", func() {
	type testCase struct {
		input string
		sql   string
		args  []any
	}

	tests := []testCase{
		{input: "cluster = 'prod'", sql: "cluster = ?", args: []any{"prod"}},
		{input: "cluster != 'prod'", sql: "cluster <> ?", args: []any{"prod"}},
		{input: "template = false", sql: "template = ?", args: []any{false}},
		{input: "cpus > 4", sql: "cpus > ?", args: []any{4.0}},
		{input: "memory >= 8GB", sql: "memory >= ?", args: []any{8192.0}},
		{input: "memory < 2048KB", sql: "memory < ?", args: []any{2.0}},
		{input: "provisioned <= 1TB", sql: "provisioned <= ?", args: []any{1048576.0}},
		{input: "in_use = 512", sql: "in_use = ?", args: []any{512.0}},
		{input: "memory >= 8GiB", sql: "memory >= ?", args: []any{8192.0}},
		{input: "memory >= 8Gi", sql: "memory >= ?", args: []any{8192.0}},
		{input: "in_use > 512Mi", sql: "in_use > ?", args: []any{512.0}},
		{input: "memory < 2048KiB", sql: "memory < ?", args: []any{2.0}},
		{input: "disk_capacity >= 1.5Ti", sql: "disk_capacity >= ?", args: []any{1572864.0}},
		{input: "name ~ /^db-/", sql: "regexp_matches(name, ?)", args: []any{"^db-"}},
		{input: "name !~ /test/", sql: "NOT regexp_matches(name, ?)", args: []any{"test"}},
		{
			input: "cluster = 'prod' and (cpus >= 8 or name ~ /^db/)",
			sql:   "(cluster = ? AND (cpus >= ? OR regexp_matches(name, ?)))",
			args:  []any{"prod", 8.0, "^db"},
		},
		{
			// quotes never reach the statement text
			input: `name = "x' OR 1=1 --"`,
			sql:   "name = ?",
			args:  []any{"x' OR 1=1 --"},
		},
	}

	for _, test := range tests {
		It("should build a condition for: "+test.input, func() {
			cond, err := ToSqlizer(test.input)
			Expect(err).NotTo(HaveOccurred())

			sql, args, err := cond.ToSql()
			Expect(err).NotTo(HaveOccurred())
			Expect(sql).To(Equal(test.sql))
			Expect(args).To(Equal(test.args))
		})
	}

	It("should return nil for a blank expression", func() {
		cond, err := ToSqlizer("   ")

		Expect(err).NotTo(HaveOccurred())
		Expect(cond).To(BeNil())
	})

	It("should wrap parse errors in InvalidFilterError", func() {
		_, err := ToSqlizer("owner = 'bob'")

		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsInvalidFilterError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("unknown identifier"))
	})

	It("should list the supported identifiers", func() {
		Expect(Identifiers()).To(ContainElements("cluster", "memory", "in_use", "disk_capacity"))
		Expect(Identifiers()).To(HaveLen(11))
	})
})
